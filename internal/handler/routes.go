package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API surface onto r.
func RegisterRoutes(r *gin.Engine, history *HistoryHandler, purchase *PurchaseHandler, report *ReportHandler) {
	api := r.Group("/shipt/api/v1")
	api.GET("/history/:customerId", history.CustomerHistory)
	api.POST("/purchase", purchase.Purchase)
	api.GET("/data/:starting/:ending/:unit", report.SalesReport)

	// ヘルスチェックエンドポイント
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Order management API is running",
		})
	})
}
