package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/inventree/pos-service/internal/domain"
)

const barcodeIndexName = "barcode-index"

type ProductRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewProductRepository(client *dynamodb.Client, tableName string) *ProductRepository {
	return &ProductRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	av, err := attributevalue.MarshalMap(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
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

func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Item, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	keyCond := expression.Key("barcode").Equal(expression.Value(barcode))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, err
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(barcodeIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query barcode index: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Items[0], &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, category, search string) ([]domain.Product, error) {
	builder := expression.NewBuilder()
	hasFilter := false

	var filter expression.ConditionBuilder
	if category != "" {
		filter = expression.Name("category").Equal(expression.Value(category))
		hasFilter = true
	}
	if search != "" {
		cond := expression.Contains(expression.Name("name"), search)
		if hasFilter {
			filter = filter.And(cond)
		} else {
			filter = cond
			hasFilter = true
		}
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if hasFilter {
		expr, err := builder.WithFilter(filter).Build()
		if err != nil {
			return nil, err
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	return r.scanProducts(ctx, input)
}

func (r *ProductRepository) ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	filter := expression.Name("stock").LessThanEqual(expression.Value(threshold))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, err
	}

	return r.scanProducts(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

func (r *ProductRepository) scanProducts(ctx context.Context, input *dynamodb.ScanInput) ([]domain.Product, error) {
	var products []domain.Product
	for {
		result, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}

		var page []domain.Product
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal products: %w", err)
		}
		products = append(products, page...)

		if result.LastEvaluatedKey == nil {
			return products, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

// buildProductUpdate assembles the patch expression for a partial update.
// An explicit empty barcode removes the attribute: the barcode-index key may
// never hold an empty string, and absent keeps the GSI sparse.
func buildProductUpdate(updates *domain.UpdateProductRequest) (expression.Expression, error) {
	update := expression.Set(expression.Name("updated_at"), expression.Value(time.Now()))
	if updates.Name != nil {
		update = update.Set(expression.Name("name"), expression.Value(*updates.Name))
	}
	if updates.Description != nil {
		update = update.Set(expression.Name("description"), expression.Value(*updates.Description))
	}
	if updates.Barcode != nil {
		if *updates.Barcode == "" {
			update = update.Remove(expression.Name("barcode"))
		} else {
			update = update.Set(expression.Name("barcode"), expression.Value(*updates.Barcode))
		}
	}
	if updates.Price != nil {
		update = update.Set(expression.Name("price"), expression.Value(*updates.Price))
	}
	if updates.Cost != nil {
		update = update.Set(expression.Name("cost"), expression.Value(*updates.Cost))
	}
	if updates.Stock != nil {
		update = update.Set(expression.Name("stock"), expression.Value(*updates.Stock))
	}
	if updates.Category != nil {
		update = update.Set(expression.Name("category"), expression.Value(*updates.Category))
	}
	if updates.ImageID != nil {
		update = update.Set(expression.Name("image_id"), expression.Value(*updates.ImageID))
	}

	condition := expression.AttributeExists(expression.Name("product_id"))

	return expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, productID string, updates *domain.UpdateProductRequest) (*domain.Product, error) {
	expr, err := buildProductUpdate(updates)
	if err != nil {
		return nil, err
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Attributes, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	condition := expression.AttributeExists(expression.Name("product_id"))
	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return err
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// AdjustStock applies an add or subtract to a product's stock. Subtracts are
// guarded so stock can never go below zero.
func (r *ProductRepository) AdjustStock(ctx context.Context, productID, operation string, quantity int) (newStock int, previousStock int, err error) {
	product, err := r.GetProduct(ctx, productID)
	if err != nil {
		return 0, 0, err
	}
	previousStock = product.Stock

	var update expression.UpdateBuilder
	builder := expression.NewBuilder()

	if operation == domain.StockOperationAdd {
		update = expression.Set(
			expression.Name("stock"),
			expression.Plus(expression.Name("stock"), expression.Value(quantity)),
		)
		builder = builder.WithCondition(
			expression.AttributeExists(expression.Name("product_id")))
	} else {
		update = expression.Set(
			expression.Name("stock"),
			expression.Minus(expression.Name("stock"), expression.Value(quantity)),
		)
		// Only update when enough stock remains
		builder = builder.WithCondition(
			expression.GreaterThanEqual(expression.Name("stock"), expression.Value(quantity)))
	}
	update = update.Set(expression.Name("updated_at"), expression.Value(time.Now()))

	expr, err := builder.WithUpdate(update).Build()
	if err != nil {
		return 0, previousStock, err
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			if operation == domain.StockOperationAdd {
				return 0, previousStock, ErrProductNotFound
			}
			return 0, previousStock, ErrInsufficientStock
		}
		return 0, previousStock, fmt.Errorf("failed to adjust stock: %w", err)
	}

	var updated domain.Product
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return 0, previousStock, err
	}

	return updated.Stock, previousStock, nil
}
