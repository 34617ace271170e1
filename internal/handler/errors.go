package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inventree/pos-service/internal/domain"
	"go.uber.org/zap"
)

// respondServiceError translates domain failures into HTTP responses. Every
// core failure is a rejected operation, never a crash; anything untyped is a
// 500.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": notFound.Error(),
		})
		return
	}

	var stock *domain.InsufficientStockError
	if errors.As(err, &stock) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Insufficient stock",
			"product":   stock.ProductName,
			"available": stock.Available,
			"requested": stock.Requested,
		})
		return
	}

	if errors.Is(err, domain.ErrDuplicateBarcode) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Product with this barcode already exists",
		})
		return
	}

	logger.Error("Request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
