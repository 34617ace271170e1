package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inventree/pos-service/internal/domain"
	"github.com/inventree/pos-service/internal/service"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCategoryHandler(catalogService *service.CatalogService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req domain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
