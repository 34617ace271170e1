package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	pkgconfig "github.com/inventree/pos-service/pkg/config"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockConflictError reports which product failed its stock condition when a
// sale transaction was cancelled by the store.
type StockConflictError struct {
	ProductID string
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock condition failed for product %s", e.ProductID)
}

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}
	if cfg.LocalMode {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", "")))
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, err
	}

	if cfg.LocalMode && cfg.DynamoDBEndpoint != "" {
		return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}), nil
	}

	return dynamodb.NewFromConfig(awsCfg), nil
}
