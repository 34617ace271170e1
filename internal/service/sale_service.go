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

// SaleEventPublisher notifies downstream consumers of completed sales.
type SaleEventPublisher interface {
	PublishSaleCompleted(sale *domain.Sale) error
}

type SaleService struct {
	sales     SaleStore
	products  ProductStore
	publisher SaleEventPublisher
	logger    *zap.Logger
}

func NewSaleService(sales SaleStore, products ProductStore, publisher SaleEventPublisher, logger *zap.Logger) *SaleService {
	return &SaleService{
		sales:     sales,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateSale validates every requested item, snapshots name and price into
// the sale's line items, and commits the sale record together with all stock
// decrements in one store transaction. Validation runs to completion before
// anything is written, so a rejected request leaves every product untouched.
func (s *SaleService) CreateSale(ctx context.Context, userID string, req domain.CreateSaleRequest) (*domain.Sale, error) {
	items := make([]domain.SaleItem, 0, len(req.Items))
	subtotal := 0.0

	for _, item := range req.Items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, &domain.NotFoundError{Resource: "product", ID: item.ProductID}
			}
			return nil, err
		}

		if product.Stock < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}

		lineTotal := product.Price * float64(item.Quantity)
		subtotal += lineTotal

		items = append(items, domain.SaleItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
	}

	taxRate := domain.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	tax := subtotal * taxRate
	total := subtotal + tax

	sale := &domain.Sale{
		SaleID:        uuid.NewString(),
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.SaleStatusCompleted,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}

	decrements := coalesceDecrements(req.Items)

	if err := s.sales.CreateSale(ctx, sale, decrements); err != nil {
		var conflict *repository.StockConflictError
		if errors.As(err, &conflict) {
			// A concurrent sale won the race. Re-read for accurate numbers.
			return nil, s.stockConflictError(ctx, conflict.ProductID, decrements)
		}
		s.logger.Error("Failed to commit sale",
			zap.String("sale_id", sale.SaleID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Sale completed",
		zap.String("sale_id", sale.SaleID),
		zap.Int("items", len(sale.Items)),
		zap.Float64("total", sale.Total))

	if s.publisher != nil {
		if err := s.publisher.PublishSaleCompleted(sale); err != nil {
			s.logger.Error("Failed to publish sale event",
				zap.String("sale_id", sale.SaleID),
				zap.Error(err))
		}
	}

	return sale, nil
}

func (s *SaleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.sales.GetSale(ctx, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, &domain.NotFoundError{Resource: "sale", ID: saleID}
		}
		return nil, err
	}
	return sale, nil
}

func (s *SaleService) ListSales(ctx context.Context, status string, limit int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.sales.ListSales(ctx, status, limit)
}

// coalesceDecrements sums quantities per product, preserving first-seen
// order. A store transaction may touch each product only once, and summing
// also closes the hole where two lines for the same product each pass
// validation against the full stock.
func coalesceDecrements(items []domain.SaleItemRequest) []domain.StockDecrement {
	index := make(map[string]int, len(items))
	decrements := make([]domain.StockDecrement, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			decrements[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(decrements)
		decrements = append(decrements, domain.StockDecrement{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return decrements
}

func (s *SaleService) stockConflictError(ctx context.Context, productID string, decrements []domain.StockDecrement) error {
	requested := 0
	for _, d := range decrements {
		if d.ProductID == productID {
			requested = d.Quantity
			break
		}
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return &domain.NotFoundError{Resource: "product", ID: productID}
		}
		return err
	}

	return &domain.InsufficientStockError{
		ProductName: product.Name,
		Available:   product.Stock,
		Requested:   requested,
	}
}
