package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/talktobrent/product-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler は売上レポートのHTTPハンドラー
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new sales report handler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesReport breaks down product volumes sold per day, week, or month across
// a yyyymmdd date range. Malformed dates get the same usage hint as a bad
// unit.
func (h *ReportHandler) SalesReport(c *gin.Context) {
	unit := c.Param("unit")

	start, err := time.Parse("20060102", c.Param("starting"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidUnit.Error()})
		return
	}
	end, err := time.Parse("20060102", c.Param("ending"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidUnit.Error()})
		return
	}

	buckets, err := h.reportService.SalesReport(c.Request.Context(), start, end, unit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUnit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidUnit.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build sales report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{unit: buckets})
}
