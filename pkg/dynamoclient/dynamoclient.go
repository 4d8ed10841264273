package dynamoclient

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	_defaultConnAttempts = 10
	_defaultConnTimeout  = time.Second
	_defaultRegion       = "us-east-2"
)

type DynamoClient struct {
	connAttempts int
	connTimeout  time.Duration

	endpoint  string
	region    string
	accessKey string
	secretKey string

	Client *dynamodb.Client
}

func New(ctx context.Context, endpoint, accessKey, secretKey string, opts ...Option) (*DynamoClient, error) {
	dc := &DynamoClient{
		connAttempts: _defaultConnAttempts,
		connTimeout:  _defaultConnTimeout,
		region:       _defaultRegion,
		endpoint:     endpoint,
		accessKey:    accessKey,
		secretKey:    secretKey,
	}

	for _, opt := range opts {
		opt(dc)
	}

	var err error
	for dc.connAttempts > 0 {
		err = dc.connect(ctx)
		if err == nil {
			break
		}

		log.Printf("DynamoDB is trying to connect, attempts left: %d", dc.connAttempts)

		time.Sleep(dc.connTimeout)

		dc.connAttempts--
	}

	if err != nil {
		return nil, fmt.Errorf("DynamoClient - New - connAttempts == 0: %w", err)
	}

	return dc, nil
}

func (d *DynamoClient) connect(ctx context.Context) error {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(d.region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(d.accessKey, d.secretKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("DynamoClient - config.LoadDefaultConfig: %w", err)
	}

	d.Client = dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if d.endpoint != "" {
			o.BaseEndpoint = aws.String(d.endpoint)
		}
	})

	// check connection
	_, err = d.Client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	if err != nil {
		return fmt.Errorf("DynamoClient - d.Client.ListTables: %w", err)
	}

	return nil
}
