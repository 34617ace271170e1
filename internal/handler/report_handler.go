package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inventree/pos-service/internal/service"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

func (h *ReportHandler) GetTodaysSales(c *gin.Context) {
	report, err := h.reportService.GetTodaysSales(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	start, ok := parseTimeParam(c, "start")
	if !ok {
		return
	}
	end, ok := parseTimeParam(c, "end")
	if !ok {
		return
	}

	report, err := h.reportService.GetSalesReport(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func parseTimeParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " date, expected RFC3339",
		})
		return nil, false
	}
	return &t, true
}
