package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated  = errors.New("user not authenticated")
	ErrDuplicateBarcode = errors.New("product with this barcode already exists")
)

// NotFoundError names the resource kind and id that failed to resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// InsufficientStockError carries what the caller needs to surface the
// rejection: which product, how much was there, how much was asked for.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. available: %d, requested: %d",
		e.ProductName, e.Available, e.Requested)
}
