package persistent

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/magtapp/image-service/internal/entity"
	"github.com/magtapp/image-service/pkg/dynamoclient"
	"github.com/magtapp/image-service/pkg/types/errs"
)

// MeaningDynamoRepo writes meaning records as DynamoDB items.
type MeaningDynamoRepo struct {
	*dynamoclient.DynamoClient
}

func NewMeaningDynamoRepo(dc *dynamoclient.DynamoClient) *MeaningDynamoRepo {
	return &MeaningDynamoRepo{dc}
}

func (r *MeaningDynamoRepo) Put(ctx context.Context, table string, record *entity.MeaningRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("MeaningDynamoRepo - Put - attributevalue.MarshalMap: %w: %w", errs.ErrRecord, err)
	}

	_, err = r.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("MeaningDynamoRepo - Put - r.Client.PutItem: %w: %w", errs.ErrRecord, err)
	}

	return nil
}
