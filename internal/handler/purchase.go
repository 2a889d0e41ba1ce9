package handler

import (
	"errors"
	"net/http"

	"github.com/talktobrent/product-api/internal/model"
	"github.com/talktobrent/product-api/internal/service"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler は注文作成のHTTPハンドラー
type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Purchase places an order for the customer named in the body. Invalid items
// are dropped silently; the error taxonomy only fires when nothing valid
// remains or the customer reference is unusable.
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req model.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.purchaseService.PlaceOrder(c.Request.Context(), req.Customer, req.Products)
	if err != nil {
		status, message := purchaseError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

// purchaseError maps the service taxonomy onto HTTP statuses while keeping
// the original message text.
func purchaseError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidItems):
		return http.StatusBadRequest, service.ErrInvalidItems.Error()
	case errors.Is(err, service.ErrInvalidCustomer):
		return http.StatusBadRequest, service.ErrInvalidCustomer.Error()
	case errors.Is(err, service.ErrCustomerNotFound):
		return http.StatusNotFound, service.ErrCustomerNotFound.Error()
	}
	return http.StatusInternalServerError, "failed to place order"
}
