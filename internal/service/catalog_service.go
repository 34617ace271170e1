package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inventree/pos-service/internal/domain"
	"github.com/inventree/pos-service/internal/repository"
	"go.uber.org/zap"
)

const defaultLowStockThreshold = 10

type CatalogService struct {
	products   ProductStore
	categories CategoryStore
	logger     *zap.Logger
}

func NewCatalogService(products ProductStore, categories CategoryStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, userID string, req domain.CreateProductRequest) (*domain.Product, error) {
	if req.Barcode != "" {
		existing, err := s.products.GetProductByBarcode(ctx, req.Barcode)
		if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicateBarcode
		}
	}

	now := time.Now()
	product := &domain.Product{
		ProductID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Barcode:     req.Barcode,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageID:     req.ImageID,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		s.logger.Error("Failed to save product",
			zap.String("product_id", product.ProductID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.String("product_id", product.ProductID),
		zap.Int("initial_stock", product.Stock))

	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, &domain.NotFoundError{Resource: "product", ID: productID}
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	product, err := s.products.GetProductByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, &domain.NotFoundError{Resource: "product", ID: barcode}
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, category, search string) ([]domain.Product, error) {
	return s.products.ListProducts(ctx, category, search)
}

func (s *CatalogService) ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	return s.products.ListLowStock(ctx, threshold)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, productID string, updates domain.UpdateProductRequest) (*domain.Product, error) {
	// A product may keep its own barcode; only a different holder conflicts.
	if updates.Barcode != nil && *updates.Barcode != "" {
		existing, err := s.products.GetProductByBarcode(ctx, *updates.Barcode)
		if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		if existing != nil && existing.ProductID != productID {
			return nil, domain.ErrDuplicateBarcode
		}
	}

	product, err := s.products.UpdateProduct(ctx, productID, &updates)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, &domain.NotFoundError{Resource: "product", ID: productID}
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	err := s.products.DeleteProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return &domain.NotFoundError{Resource: "product", ID: productID}
		}
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", productID))
	return nil
}

func (s *CatalogService) AdjustStock(ctx context.Context, productID string, req domain.AdjustStockRequest) (*domain.StockAdjustmentResponse, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, &domain.NotFoundError{Resource: "product", ID: productID}
		}
		return nil, err
	}

	newStock, previousStock, err := s.products.AdjustStock(ctx, productID, req.Operation, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, &domain.NotFoundError{Resource: "product", ID: productID}
		}
		if errors.Is(err, repository.ErrInsufficientStock) {
			// The read above may be stale if a concurrent writer got in
			// between; re-read so the rejection carries the stock that
			// actually defeated the condition.
			available := product.Stock
			if fresh, ferr := s.products.GetProduct(ctx, productID); ferr == nil {
				available = fresh.Stock
			}
			return nil, &domain.InsufficientStockError{
				ProductName: product.Name,
				Available:   available,
				Requested:   req.Quantity,
			}
		}
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("product_id", productID),
		zap.String("operation", req.Operation),
		zap.Int("previous_stock", previousStock),
		zap.Int("new_stock", newStock))

	return &domain.StockAdjustmentResponse{
		ProductID:     productID,
		PreviousStock: previousStock,
		NewStock:      newStock,
		Operation:     req.Operation,
		Quantity:      req.Quantity,
	}, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, userID string, req domain.CreateCategoryRequest) (*domain.Category, error) {
	category := &domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	if err := s.categories.CreateCategory(ctx, category); err != nil {
		s.logger.Error("Failed to save category",
			zap.String("category_id", category.CategoryID),
			zap.Error(err))
		return nil, err
	}

	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, categoryID string) error {
	err := s.categories.DeleteCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return &domain.NotFoundError{Resource: "category", ID: categoryID}
		}
		return err
	}
	return nil
}
