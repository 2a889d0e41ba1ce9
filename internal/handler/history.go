package handler

import (
	"net/http"
	"strconv"

	"github.com/talktobrent/product-api/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryHandler は注文履歴のHTTPハンドラー
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// CustomerHistory returns all of a customer's orders newest-first, keyed by
// the customer id. A customer with no orders gets the "no orders!" sentinel
// instead of a list, unknown ids included.
func (h *HistoryHandler) CustomerHistory(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer id must be an integer"})
		return
	}

	summaries, err := h.historyService.CustomerHistory(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get customer history"})
		return
	}

	key := strconv.FormatInt(customerID, 10)
	if len(summaries) == 0 {
		c.JSON(http.StatusOK, gin.H{key: "no orders!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{key: summaries})
}
