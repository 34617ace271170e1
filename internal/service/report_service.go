package service

import (
	"context"
	"sort"
	"time"

	"github.com/inventree/pos-service/internal/domain"
	"go.uber.org/zap"
)

const topProductsLimit = 10

type ReportService struct {
	sales  SaleStore
	logger *zap.Logger
}

func NewReportService(sales SaleStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		sales:  sales,
		logger: logger,
	}
}

// GetTodaysSales returns every sale created on or after local midnight,
// together with the day's revenue and transaction count.
func (s *ReportService) GetTodaysSales(ctx context.Context) (*domain.TodaysSales, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sales, err := s.sales.ListSalesInRange(ctx, &midnight, nil)
	if err != nil {
		return nil, err
	}

	totalRevenue := 0.0
	for _, sale := range sales {
		totalRevenue += sale.Total
	}

	return &domain.TodaysSales{
		Sales:             sales,
		TotalRevenue:      totalRevenue,
		TotalTransactions: len(sales),
	}, nil
}

// GetSalesReport aggregates sales inside the inclusive bounds. Per-product
// figures are summed from line-item snapshots, keyed by product id and using
// the snapshotted names, so edited or deleted products report as sold.
// Ranking is by revenue descending, ties in first-seen order.
func (s *ReportService) GetSalesReport(ctx context.Context, start, end *time.Time) (*domain.SalesReport, error) {
	sales, err := s.sales.ListSalesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totalRevenue := 0.0
	for _, sale := range sales {
		totalRevenue += sale.Total
	}

	totalTransactions := len(sales)
	averageTransaction := 0.0
	if totalTransactions > 0 {
		averageTransaction = totalRevenue / float64(totalTransactions)
	}

	index := make(map[string]int)
	var aggregates []domain.ProductSales
	for _, sale := range sales {
		for _, item := range sale.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(aggregates)
				index[item.ProductID] = i
				aggregates = append(aggregates, domain.ProductSales{
					ProductID: item.ProductID,
					Name:      item.ProductName,
				})
			}
			aggregates[i].Quantity += item.Quantity
			aggregates[i].Revenue += item.LineTotal
		}
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Revenue > aggregates[j].Revenue
	})
	if len(aggregates) > topProductsLimit {
		aggregates = aggregates[:topProductsLimit]
	}

	s.logger.Debug("Sales report built",
		zap.Int("transactions", totalTransactions),
		zap.Float64("revenue", totalRevenue))

	return &domain.SalesReport{
		TotalRevenue:       totalRevenue,
		TotalTransactions:  totalTransactions,
		AverageTransaction: averageTransaction,
		TopProducts:        aggregates,
		Sales:              sales,
	}, nil
}
