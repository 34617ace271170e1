package domain

import (
	"time"
)

type Product struct {
	ProductID   string    `dynamodbav:"product_id"  json:"product_id"`
	Name        string    `dynamodbav:"name"        json:"name"`
	Description string    `dynamodbav:"description" json:"description,omitempty"`
	Barcode     string    `dynamodbav:"barcode,omitempty" json:"barcode,omitempty"`
	Price       float64   `dynamodbav:"price"       json:"price"`
	Cost        float64   `dynamodbav:"cost"        json:"cost,omitempty"`
	Stock       int       `dynamodbav:"stock"       json:"stock"`
	Category    string    `dynamodbav:"category"    json:"category,omitempty"`
	ImageID     string    `dynamodbav:"image_id"    json:"image_id,omitempty"`
	CreatedBy   string    `dynamodbav:"created_by"  json:"created_by"`
	CreatedAt   time.Time `dynamodbav:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at"  json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"     binding:"required"`
	Description string  `json:"description"`
	Barcode     string  `json:"barcode"`
	Price       float64 `json:"price"    binding:"required,min=0"`
	Cost        float64 `json:"cost"     binding:"min=0"`
	Stock       int     `json:"stock"    binding:"min=0"`
	Category    string  `json:"category"`
	ImageID     string  `json:"image_id"`
}

// UpdateProductRequest carries a partial update. Nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Barcode     *string  `json:"barcode"`
	Price       *float64 `json:"price"`
	Cost        *float64 `json:"cost"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	ImageID     *string  `json:"image_id"`
}

const (
	StockOperationAdd      = "add"
	StockOperationSubtract = "subtract"
)

type AdjustStockRequest struct {
	Operation string `json:"operation" binding:"required,oneof=add subtract"`
	Quantity  int    `json:"quantity"  binding:"required,min=1"`
}

type StockAdjustmentResponse struct {
	ProductID     string `json:"product_id"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Operation     string `json:"operation"`
	Quantity      int    `json:"quantity"`
}
