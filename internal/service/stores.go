package service

import (
	"context"
	"time"

	"github.com/inventree/pos-service/internal/domain"
)

// Store interfaces the services depend on. The DynamoDB repositories satisfy
// them in production; tests use in-memory fakes.

type ProductStore interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	ListProducts(ctx context.Context, category, search string) ([]domain.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, updates *domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	AdjustStock(ctx context.Context, productID, operation string, quantity int) (newStock, previousStock int, err error)
}

type SaleStore interface {
	CreateSale(ctx context.Context, sale *domain.Sale, decrements []domain.StockDecrement) error
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, status string, limit int) ([]domain.Sale, error)
	ListSalesInRange(ctx context.Context, start, end *time.Time) ([]domain.Sale, error)
}

type CategoryStore interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}
