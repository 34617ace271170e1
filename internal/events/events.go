package events

import (
	"time"
)

// SaleCompletedEvent is published after a sale commits.
type SaleCompletedEvent struct {
	EventID       string         `json:"event_id"`
	SaleID        string         `json:"sale_id"`
	Subtotal      float64        `json:"subtotal"`
	Tax           float64        `json:"tax"`
	Total         float64        `json:"total"`
	PaymentMethod string         `json:"payment_method"`
	Items         []SaleItemSold `json:"items"`
	CreatedBy     string         `json:"created_by"`
	Timestamp     time.Time      `json:"timestamp"`
}

type SaleItemSold struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}
