package domain

import (
	"time"
)

const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
)

// DefaultTaxRate applies when a sale request does not specify one.
const DefaultTaxRate = 0.10

// SaleItem is a point-in-time copy of one product line. Name and unit price
// are snapshots taken when the sale was made; later product edits or deletes
// never change them. ProductID is kept for traceability only.
type SaleItem struct {
	ProductID   string  `dynamodbav:"product_id"   json:"product_id"`
	ProductName string  `dynamodbav:"product_name" json:"product_name"`
	Quantity    int     `dynamodbav:"quantity"     json:"quantity"`
	UnitPrice   float64 `dynamodbav:"unit_price"   json:"unit_price"`
	LineTotal   float64 `dynamodbav:"line_total"   json:"line_total"`
}

// Sale is immutable once written.
type Sale struct {
	SaleID        string     `dynamodbav:"sale_id"        json:"sale_id"`
	Items         []SaleItem `dynamodbav:"items"          json:"items"`
	Subtotal      float64    `dynamodbav:"subtotal"       json:"subtotal"`
	Tax           float64    `dynamodbav:"tax"            json:"tax"`
	Total         float64    `dynamodbav:"total"          json:"total"`
	CustomerName  string     `dynamodbav:"customer_name"  json:"customer_name,omitempty"`
	CustomerEmail string     `dynamodbav:"customer_email" json:"customer_email,omitempty"`
	PaymentMethod string     `dynamodbav:"payment_method" json:"payment_method"`
	Status        string     `dynamodbav:"status"         json:"status"`
	CreatedBy     string     `dynamodbav:"created_by"     json:"created_by"`
	CreatedAt     time.Time  `dynamodbav:"created_at"     json:"created_at"`
}

type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"   binding:"required,min=1"`
}

type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"          binding:"required,min=1,dive"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	TaxRate       *float64          `json:"tax_rate"       binding:"omitempty,min=0"`
}

// StockDecrement is one product's share of a sale commit.
type StockDecrement struct {
	ProductID string
	Quantity  int
}
