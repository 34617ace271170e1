package domain

import (
	"time"
)

type Category struct {
	CategoryID  string    `dynamodbav:"category_id" json:"category_id"`
	Name        string    `dynamodbav:"name"        json:"name"`
	Description string    `dynamodbav:"description" json:"description,omitempty"`
	CreatedBy   string    `dynamodbav:"created_by"  json:"created_by"`
	CreatedAt   time.Time `dynamodbav:"created_at"  json:"created_at"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
