package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/inventree/pos-service/internal/domain"
	"github.com/shopspring/decimal"
)

// invoiceIDLength is how many trailing characters of the sale id appear on
// the document and in the filename. Display-friendly, not a security boundary.
const invoiceIDLength = 8

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": formatMoney,
}).Parse(invoiceHTML))

// formatMoney renders a money value with exactly two decimal places.
func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

type invoiceData struct {
	ShortID string
	Date    string
	Sale    *domain.Sale
}

type InvoiceService struct{}

func NewInvoiceService() *InvoiceService {
	return &InvoiceService{}
}

// RenderInvoice formats a sale into a standalone HTML document. It is a pure
// function of the sale record: the same sale always yields identical bytes.
func (s *InvoiceService) RenderInvoice(sale *domain.Sale) (*domain.Invoice, error) {
	shortID := shortSaleID(sale.SaleID)

	var buf bytes.Buffer
	err := invoiceTemplate.Execute(&buf, invoiceData{
		ShortID: shortID,
		Date:    sale.CreatedAt.Format("1/2/2006"),
		Sale:    sale,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return &domain.Invoice{
		Document: buf.String(),
		Filename: fmt.Sprintf("invoice-%s.html", shortID),
	}, nil
}

func shortSaleID(saleID string) string {
	if len(saleID) <= invoiceIDLength {
		return saleID
	}
	return saleID[len(saleID)-invoiceIDLength:]
}

const invoiceHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Invoice #{{.ShortID}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; }
    .header { text-align: center; margin-bottom: 40px; }
    .company-name { font-size: 24px; font-weight: bold; color: #333; }
    .invoice-details { margin-bottom: 30px; }
    .customer-details { margin-bottom: 30px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
    th { background-color: #f8f9fa; font-weight: bold; }
    .total-row { font-weight: bold; background-color: #f8f9fa; }
    .text-right { text-align: right; }
    .summary { margin-top: 30px; }
    .summary table { width: 300px; margin-left: auto; }
  </style>
</head>
<body>
  <div class="header">
    <div class="company-name">Inventree</div>
    <p>Inventory &amp; Billing System</p>
  </div>

  <div class="invoice-details">
    <h2>Invoice #{{.ShortID}}</h2>
    <p><strong>Date:</strong> {{.Date}}</p>
    <p><strong>Payment Method:</strong> {{.Sale.PaymentMethod}}</p>
  </div>
{{if .Sale.CustomerName}}
  <div class="customer-details">
    <h3>Customer Details</h3>
    <p><strong>Name:</strong> {{.Sale.CustomerName}}</p>
{{if .Sale.CustomerEmail}}    <p><strong>Email:</strong> {{.Sale.CustomerEmail}}</p>
{{end}}  </div>
{{end}}
  <table>
    <thead>
      <tr>
        <th>Item</th>
        <th>Quantity</th>
        <th class="text-right">Price</th>
        <th class="text-right">Total</th>
      </tr>
    </thead>
    <tbody>
{{range .Sale.Items}}      <tr>
        <td>{{.ProductName}}</td>
        <td>{{.Quantity}}</td>
        <td class="text-right">${{money .UnitPrice}}</td>
        <td class="text-right">${{money .LineTotal}}</td>
      </tr>
{{end}}    </tbody>
  </table>

  <div class="summary">
    <table>
      <tr>
        <td>Subtotal:</td>
        <td class="text-right">${{money .Sale.Subtotal}}</td>
      </tr>
      <tr>
        <td>Tax:</td>
        <td class="text-right">${{money .Sale.Tax}}</td>
      </tr>
      <tr class="total-row">
        <td><strong>Total:</strong></td>
        <td class="text-right"><strong>${{money .Sale.Total}}</strong></td>
      </tr>
    </table>
  </div>

  <div style="margin-top: 50px; text-align: center; color: #666;">
    <p>Thank you for your business!</p>
  </div>
</body>
</html>
`
