package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/inventree/pos-service/internal/domain"
)

type CategoryRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewCategoryRepository(client *dynamodb.Client, tableName string) *CategoryRepository {
	return &CategoryRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	av, err := attributevalue.MarshalMap(category)
	if err != nil {
		return fmt.Errorf("failed to marshal category: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	var categories []domain.Category
	for {
		result, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan categories: %w", err)
		}

		var page []domain.Category
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
		}
		categories = append(categories, page...)

		if result.LastEvaluatedKey == nil {
			return categories, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	condition := expression.AttributeExists(expression.Name("category_id"))
	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return err
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"category_id": &types.AttributeValueMemberS{Value: categoryID},
		},
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
