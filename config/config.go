package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP    HTTP
		Log     Log
		S3      S3
		Record  Record
		PG      PG
		Upload  Upload
		Swagger Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	S3 struct {
		Endpoint         string        `env:"S3_ENDPOINT,required"`
		AccessKey        string        `env:"S3_ACCESS_KEY,required"`
		SecretKey        string        `env:"S3_SECRET_KEY,required"`
		Region           string        `env:"S3_REGION" envDefault:"us-east-2"`
		OriginalBucket   string        `env:"S3_ORIGINAL_BUCKET" envDefault:"magtapp-image-original"`
		CompressedBucket string        `env:"S3_COMPRESSED_BUCKET" envDefault:"magtapp-image-compressed"`
		PublicBaseURL    string        `env:"S3_PUBLIC_BASE_URL"`
		CfgLoadTimeout   time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Record struct {
		// Backend selects the record store implementation: dynamo or postgres.
		Backend         string        `env:"RECORD_BACKEND" envDefault:"dynamo"`
		DynamoEndpoint  string        `env:"DYNAMO_ENDPOINT"`
		DynamoRegion    string        `env:"DYNAMO_REGION" envDefault:"us-east-2"`
		WordTable       string        `env:"RECORD_WORD_TABLE" envDefault:"Word-Image"`
		CompressedTable string        `env:"RECORD_COMPRESSED_TABLE" envDefault:"compressed-image-word"`
		CfgLoadTimeout  time.Duration `env:"DYNAMO_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
		URL     string `env:"PG_URL"`
	}

	Upload struct {
		MaxFileSize  int64 `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"10485760"`
		ResizeWidth  int   `env:"UPLOAD_RESIZE_WIDTH" envDefault:"0"`
		ResizeHeight int   `env:"UPLOAD_RESIZE_HEIGHT" envDefault:"0"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
