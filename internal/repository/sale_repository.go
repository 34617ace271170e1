package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/inventree/pos-service/internal/domain"
)

const statusIndexName = "status-index"

type SaleRepository struct {
	client           *dynamodb.Client
	tableName        string
	productTableName string
}

func NewSaleRepository(client *dynamodb.Client, tableName, productTableName string) *SaleRepository {
	return &SaleRepository{
		client:           client,
		tableName:        tableName,
		productTableName: productTableName,
	}
}

// CreateSale writes the sale record and decrements stock on every referenced
// product in a single transaction. Each decrement carries a stock >= quantity
// condition, so a concurrent sale that depletes a product cancels the whole
// transaction and no stock is touched.
func (r *SaleRepository) CreateSale(ctx context.Context, sale *domain.Sale, decrements []domain.StockDecrement) error {
	av, err := attributevalue.MarshalMap(sale)
	if err != nil {
		return fmt.Errorf("failed to marshal sale: %w", err)
	}

	items := make([]types.TransactWriteItem, 0, len(decrements)+1)
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(r.tableName),
			Item:      av,
		},
	})

	for _, d := range decrements {
		update := expression.Set(
			expression.Name("stock"),
			expression.Minus(expression.Name("stock"), expression.Value(d.Quantity)),
		).Set(
			expression.Name("updated_at"),
			expression.Value(sale.CreatedAt),
		)

		condition := expression.AttributeExists(expression.Name("product_id")).And(
			expression.GreaterThanEqual(expression.Name("stock"), expression.Value(d.Quantity)))

		expr, err := expression.NewBuilder().
			WithUpdate(update).
			WithCondition(condition).
			Build()
		if err != nil {
			return err
		}

		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(r.productTableName),
				Key: map[string]types.AttributeValue{
					"product_id": &types.AttributeValueMemberS{Value: d.ProductID},
				},
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
				UpdateExpression:          expr.Update(),
				ConditionExpression:       expr.Condition(),
			},
		})
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for i, reason := range tce.CancellationReasons {
				// Index 0 is the sale Put; decrements start at 1.
				if i > 0 && aws.ToString(reason.Code) == "ConditionalCheckFailed" {
					return &StockConflictError{ProductID: decrements[i-1].ProductID}
				}
			}
		}
		return fmt.Errorf("failed to commit sale: %w", err)
	}

	return nil
}

func (r *SaleRepository) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"sale_id": &types.AttributeValueMemberS{Value: saleID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrSaleNotFound
	}

	var sale domain.Sale
	if err := attributevalue.UnmarshalMap(result.Item, &sale); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sale: %w", err)
	}

	return &sale, nil
}

// ListSales returns sales newest first, optionally filtered by status.
func (r *SaleRepository) ListSales(ctx context.Context, status string, limit int) ([]domain.Sale, error) {
	var sales []domain.Sale
	var err error

	if status != "" {
		sales, err = r.queryByStatus(ctx, status)
	} else {
		sales, err = r.scanSales(ctx)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(sales, func(i, j int) bool {
		return sales[i].CreatedAt.After(sales[j].CreatedAt)
	})

	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

// ListSalesInRange returns sales whose creation time falls inside the
// inclusive bounds. Nil bounds are open ended. Filtering happens after the
// scan so time comparisons use real timestamps, not encoded strings.
func (r *SaleRepository) ListSalesInRange(ctx context.Context, start, end *time.Time) ([]domain.Sale, error) {
	sales, err := r.scanSales(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if start != nil && sale.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && sale.CreatedAt.After(*end) {
			continue
		}
		filtered = append(filtered, sale)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})
	return filtered, nil
}

func (r *SaleRepository) queryByStatus(ctx context.Context, status string) ([]domain.Sale, error) {
	keyCond := expression.Key("status").Equal(expression.Value(status))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(statusIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var sales []domain.Sale
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query status index: %w", err)
		}

		var page []domain.Sale
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sales: %w", err)
		}
		sales = append(sales, page...)

		if result.LastEvaluatedKey == nil {
			return sales, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

func (r *SaleRepository) scanSales(ctx context.Context) ([]domain.Sale, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	var sales []domain.Sale
	for {
		result, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales: %w", err)
		}

		var page []domain.Sale
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sales: %w", err)
		}
		sales = append(sales, page...)

		if result.LastEvaluatedKey == nil {
			return sales, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
