package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/inventree/pos-service/internal/domain"
	"github.com/inventree/pos-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSale() *domain.Sale {
	return &domain.Sale{
		SaleID: "4f2c9a1b-7d35-4c21-9f4e-abcdef123456",
		Items: []domain.SaleItem{
			{ProductID: "p1", ProductName: "Widget", Quantity: 3, UnitPrice: 10, LineTotal: 30},
			{ProductID: "p2", ProductName: "Gadget", Quantity: 1, UnitPrice: 7, LineTotal: 7},
		},
		Subtotal:      37,
		Tax:           3.7,
		Total:         40.7,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		PaymentMethod: "card",
		Status:        domain.SaleStatusCompleted,
		CreatedAt:     time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
	}
}

func TestRenderInvoiceIsDeterministic(t *testing.T) {
	svc := service.NewInvoiceService()
	sale := sampleSale()

	first, err := svc.RenderInvoice(sale)
	require.NoError(t, err)
	second, err := svc.RenderInvoice(sale)
	require.NoError(t, err)

	assert.Equal(t, first.Document, second.Document)
	assert.Equal(t, first.Filename, second.Filename)
}

func TestRenderInvoiceMoneyHasTwoDecimals(t *testing.T) {
	svc := service.NewInvoiceService()
	invoice, err := svc.RenderInvoice(sampleSale())
	require.NoError(t, err)

	// Whole-number prices still render with cents.
	assert.Contains(t, invoice.Document, "$7.00")
	assert.Contains(t, invoice.Document, "$10.00")
	assert.Contains(t, invoice.Document, "$37.00")
	assert.Contains(t, invoice.Document, "$3.70")
	assert.Contains(t, invoice.Document, "$40.70")
}

func TestRenderInvoiceFilenameFromSaleID(t *testing.T) {
	svc := service.NewInvoiceService()
	invoice, err := svc.RenderInvoice(sampleSale())
	require.NoError(t, err)

	assert.Equal(t, "invoice-ef123456.html", invoice.Filename)
	assert.Contains(t, invoice.Document, "Invoice #ef123456")
}

func TestRenderInvoiceContents(t *testing.T) {
	svc := service.NewInvoiceService()
	invoice, err := svc.RenderInvoice(sampleSale())
	require.NoError(t, err)

	doc := invoice.Document
	assert.Contains(t, doc, "Inventree")
	assert.Contains(t, doc, "3/15/2026")
	assert.Contains(t, doc, "card")
	assert.Contains(t, doc, "Ada Lovelace")
	assert.Contains(t, doc, "ada@example.com")
	assert.Contains(t, doc, "Widget")
	assert.Contains(t, doc, "Gadget")
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
}

func TestRenderInvoiceOmitsEmptyCustomerBlock(t *testing.T) {
	svc := service.NewInvoiceService()
	sale := sampleSale()
	sale.CustomerName = ""
	sale.CustomerEmail = ""

	invoice, err := svc.RenderInvoice(sale)
	require.NoError(t, err)
	assert.NotContains(t, invoice.Document, "Customer Details")
}

func TestRenderInvoiceShortSaleID(t *testing.T) {
	svc := service.NewInvoiceService()
	sale := sampleSale()
	sale.SaleID = "tiny"

	invoice, err := svc.RenderInvoice(sale)
	require.NoError(t, err)
	assert.Equal(t, "invoice-tiny.html", invoice.Filename)
}
