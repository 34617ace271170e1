package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inventree/pos-service/internal/domain"
	"github.com/inventree/pos-service/internal/repository"
)

// memStore is an in-memory stand-in for the DynamoDB repositories. Its
// CreateSale mirrors the transactional contract: every decrement is checked
// before any stock changes.
type memStore struct {
	mu         sync.Mutex
	products   map[string]domain.Product
	sales      map[string]domain.Sale
	categories map[string]domain.Category
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[string]domain.Product),
		sales:      make(map[string]domain.Sale),
		categories: make(map[string]domain.Category),
	}
}

func (m *memStore) CreateProduct(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ProductID] = *product
	return nil
}

func (m *memStore) GetProduct(_ context.Context, productID string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *memStore) GetProductByBarcode(_ context.Context, barcode string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Barcode == barcode {
			copied := p
			return &copied, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *memStore) ListProducts(_ context.Context, category, search string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(p.Name, search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) ListLowStock(_ context.Context, threshold int) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.Stock <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) UpdateProduct(_ context.Context, productID string, updates *domain.UpdateProductRequest) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Description != nil {
		p.Description = *updates.Description
	}
	if updates.Barcode != nil {
		p.Barcode = *updates.Barcode
	}
	if updates.Price != nil {
		p.Price = *updates.Price
	}
	if updates.Cost != nil {
		p.Cost = *updates.Cost
	}
	if updates.Stock != nil {
		p.Stock = *updates.Stock
	}
	if updates.Category != nil {
		p.Category = *updates.Category
	}
	if updates.ImageID != nil {
		p.ImageID = *updates.ImageID
	}
	p.UpdatedAt = time.Now()
	m.products[productID] = p
	return &p, nil
}

func (m *memStore) DeleteProduct(_ context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[productID]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, productID)
	return nil
}

func (m *memStore) AdjustStock(_ context.Context, productID, operation string, quantity int) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return 0, 0, repository.ErrProductNotFound
	}
	previous := p.Stock
	if operation == domain.StockOperationAdd {
		p.Stock += quantity
	} else {
		if p.Stock < quantity {
			return 0, previous, repository.ErrInsufficientStock
		}
		p.Stock -= quantity
	}
	m.products[productID] = p
	return p.Stock, previous, nil
}

func (m *memStore) CreateSale(_ context.Context, sale *domain.Sale, decrements []domain.StockDecrement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range decrements {
		p, ok := m.products[d.ProductID]
		if !ok || p.Stock < d.Quantity {
			return &repository.StockConflictError{ProductID: d.ProductID}
		}
	}

	for _, d := range decrements {
		p := m.products[d.ProductID]
		p.Stock -= d.Quantity
		m.products[d.ProductID] = p
	}

	stored := *sale
	stored.Items = append([]domain.SaleItem(nil), sale.Items...)
	m.sales[sale.SaleID] = stored
	return nil
}

func (m *memStore) GetSale(_ context.Context, saleID string) (*domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sales[saleID]
	if !ok {
		return nil, repository.ErrSaleNotFound
	}
	copied := s
	copied.Items = append([]domain.SaleItem(nil), s.Items...)
	return &copied, nil
}

func (m *memStore) ListSales(_ context.Context, status string, limit int) ([]domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Sale
	for _, s := range m.sales {
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) ListSalesInRange(_ context.Context, start, end *time.Time) ([]domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Sale
	for _, s := range m.sales {
		if start != nil && s.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && s.CreatedAt.After(*end) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memStore) CreateCategory(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.CategoryID] = *category
	return nil
}

func (m *memStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) DeleteCategory(_ context.Context, categoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[categoryID]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, categoryID)
	return nil
}

// addSale inserts a sale directly, bypassing stock checks. Used by report
// tests to stage history.
func (m *memStore) addSale(sale domain.Sale) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.SaleID] = sale
}

// recordingPublisher captures published sale ids.
type recordingPublisher struct {
	saleIDs []string
}

func (p *recordingPublisher) PublishSaleCompleted(sale *domain.Sale) error {
	p.saleIDs = append(p.saleIDs, sale.SaleID)
	return nil
}
