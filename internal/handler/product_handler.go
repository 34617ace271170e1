package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inventree/pos-service/internal/domain"
	"github.com/inventree/pos-service/internal/service"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewProductHandler(catalogService *service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProductByBarcode(c *gin.Context) {
	product, err := h.catalogService.GetProductByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(),
		c.Query("category"), c.Query("search"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) ListLowStock(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.Query("threshold"))

	products, err := h.catalogService.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req domain.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.catalogService.AdjustStock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportProducts streams the catalog as an Excel workbook.
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), "", "")
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	header := sheet.AddRow()
	for _, col := range []string{"ID", "Name", "Description", "Barcode", "Price", "Cost", "Stock", "Category"} {
		header.AddCell().SetValue(col)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ProductID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Barcode)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Cost)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Category)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
	if err := file.Write(c.Writer); err != nil {
		h.logger.Error("Failed to write export", zap.Error(err))
	}
}
