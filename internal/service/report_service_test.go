package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/inventree/pos-service/internal/domain"
	"github.com/inventree/pos-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func saleAt(id string, createdAt time.Time, total float64, items ...domain.SaleItem) domain.Sale {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal
	}
	return domain.Sale{
		SaleID:        id,
		Items:         items,
		Subtotal:      subtotal,
		Total:         total,
		PaymentMethod: "cash",
		Status:        domain.SaleStatusCompleted,
		CreatedAt:     createdAt,
	}
}

func lineItem(productID, name string, quantity int, unitPrice float64) domain.SaleItem {
	return domain.SaleItem{
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice * float64(quantity),
	}
}

func TestGetTodaysSalesFiltersAtLocalMidnight(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	store.addSale(saleAt("yesterday", midnight.Add(-time.Minute), 100))
	store.addSale(saleAt("at-midnight", midnight, 25))
	store.addSale(saleAt("today", midnight.Add(time.Hour), 50))

	svc := service.NewReportService(store, zap.NewNop())
	report, err := svc.GetTodaysSales(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTransactions)
	assert.InDelta(t, 75.0, report.TotalRevenue, 1e-9)

	ids := make([]string, 0, len(report.Sales))
	for _, s := range report.Sales {
		ids = append(ids, s.SaleID)
	}
	assert.ElementsMatch(t, []string{"at-midnight", "today"}, ids)
}

func TestGetSalesReportUnboundedMatchesAllSales(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	store.addSale(saleAt("s1", base, 30))
	store.addSale(saleAt("s2", base.Add(24*time.Hour), 70))

	svc := service.NewReportService(store, zap.NewNop())
	report, err := svc.GetSalesReport(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTransactions)
	assert.InDelta(t, 100.0, report.TotalRevenue, 1e-9)
	assert.InDelta(t, 50.0, report.AverageTransaction, 1e-9)
}

func TestGetSalesReportInclusiveBounds(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	store.addSale(saleAt("before", base.Add(-time.Hour), 10))
	store.addSale(saleAt("start", base, 20))
	store.addSale(saleAt("end", base.Add(time.Hour), 30))
	store.addSale(saleAt("after", base.Add(2*time.Hour), 40))

	start := base
	end := base.Add(time.Hour)

	svc := service.NewReportService(store, zap.NewNop())
	report, err := svc.GetSalesReport(context.Background(), &start, &end)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTransactions)
	assert.InDelta(t, 50.0, report.TotalRevenue, 1e-9)
}

func TestGetSalesReportEmptyWindow(t *testing.T) {
	store := newMemStore()
	svc := service.NewReportService(store, zap.NewNop())

	report, err := svc.GetSalesReport(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalTransactions)
	assert.Zero(t, report.TotalRevenue)
	// Zero transactions yields zero, not NaN or a division error.
	assert.Zero(t, report.AverageTransaction)
	assert.Empty(t, report.TopProducts)
}

func TestGetSalesReportTopProductRanking(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

	store.addSale(saleAt("s1", base, 55,
		lineItem("a", "Alpha", 5, 10),  // $50
		lineItem("c", "Gamma", 1, 30))) // $30
	store.addSale(saleAt("s2", base.Add(time.Minute), 132,
		lineItem("b", "Beta", 2, 60))) // $120

	svc := service.NewReportService(store, zap.NewNop())
	report, err := svc.GetSalesReport(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 3)
	assert.Equal(t, "b", report.TopProducts[0].ProductID)
	assert.Equal(t, "a", report.TopProducts[1].ProductID)
	assert.Equal(t, "c", report.TopProducts[2].ProductID)
	assert.InDelta(t, 120.0, report.TopProducts[0].Revenue, 1e-9)
	assert.Equal(t, 2, report.TopProducts[0].Quantity)
}

func TestGetSalesReportTieBreakIsFirstSeen(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

	// Equal revenue; first-seen order across the scanned sales wins.
	store.addSale(saleAt("s1", base, 44, lineItem("x", "Xylo", 2, 20)))
	store.addSale(saleAt("s2", base.Add(time.Minute), 44, lineItem("y", "Yarrow", 4, 10)))

	svc := service.NewReportService(store, zap.NewNop())
	report, err := svc.GetSalesReport(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, "x", report.TopProducts[0].ProductID)
	assert.Equal(t, "y", report.TopProducts[1].ProductID)
}

func TestGetSalesReportCapsAtTenProducts(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("p%02d", i)
		store.addSale(saleAt(fmt.Sprintf("s%02d", i), base.Add(time.Duration(i)*time.Minute),
			float64(i+1), lineItem(id, "Product "+id, 1, float64(i+1))))
	}

	svc := service.NewReportService(store, zap.NewNop())
	report, err := svc.GetSalesReport(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 10)
	// Highest revenue first; the two cheapest fall off.
	assert.Equal(t, "p11", report.TopProducts[0].ProductID)
	assert.Equal(t, "p02", report.TopProducts[9].ProductID)
}

func TestGetSalesReportUsesSnapshottedNames(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

	// The product no longer exists in the catalog; the report still names it
	// from the line-item snapshot.
	store.addSale(saleAt("s1", base, 22, lineItem("gone", "Discontinued Widget", 1, 20)))

	svc := service.NewReportService(store, zap.NewNop())
	report, err := svc.GetSalesReport(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, "Discontinued Widget", report.TopProducts[0].Name)
}

func TestGetSalesReportAggregatesAcrossSales(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

	store.addSale(saleAt("s1", base, 11, lineItem("a", "Alpha", 1, 10)))
	store.addSale(saleAt("s2", base.Add(time.Minute), 22, lineItem("a", "Alpha", 2, 10)))

	svc := service.NewReportService(store, zap.NewNop())
	report, err := svc.GetSalesReport(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, 3, report.TopProducts[0].Quantity)
	assert.InDelta(t, 30.0, report.TopProducts[0].Revenue, 1e-9)
}
