package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inventree/pos-service/internal/domain"
	"github.com/inventree/pos-service/internal/service"
	"go.uber.org/zap"
)

type SaleHandler struct {
	saleService    *service.SaleService
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewSaleHandler(saleService *service.SaleService, invoiceService *service.InvoiceService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		saleService:    saleService,
		invoiceService: invoiceService,
		logger:         logger,
	}
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req domain.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	sales, err := h.saleService.ListSales(c.Request.Context(), c.Query("status"), limit)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// GetInvoice renders the sale as an HTML document. Delivery is the caller's
// job; the body carries the document and a suggested filename.
func (h *SaleHandler) GetInvoice(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	invoice, err := h.invoiceService.RenderInvoice(sale)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}
