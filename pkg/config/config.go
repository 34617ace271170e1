package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port              string `envconfig:"PORT" default:"8080"`
	AWSRegion         string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	ProductTableName  string `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`
	SaleTableName     string `envconfig:"SALE_TABLE_NAME" default:"sales-table"`
	CategoryTableName string `envconfig:"CATEGORY_TABLE_NAME" default:"categories-table"`
	DynamoDBEndpoint  string `envconfig:"DYNAMODB_ENDPOINT" default:"http://localhost:8000"`
	KafkaBrokers      string `envconfig:"KAFKA_BROKERS" default:""`
	JWTSecret         string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	LocalMode         bool   `envconfig:"LOCAL_MODE" default:"true"` // run without AWS
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
