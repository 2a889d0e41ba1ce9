package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/talktobrent/product-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseService は注文作成サービスのインターフェース
type PurchaseService interface {
	PlaceOrder(ctx context.Context, customerRef any, items map[string]any) (*model.PurchaseResult, error)
}

// purchaseServiceImpl は注文作成サービスの実装
type purchaseServiceImpl struct {
	db *gorm.DB
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(db *gorm.DB) PurchaseService {
	return &purchaseServiceImpl{db: db}
}

// PlaceOrder filters the incoming item map, resolves or creates the customer,
// and writes the order, its line items, and the inventory decrements in one
// transaction, so concurrent purchases cannot interleave half-applied.
func (s *purchaseServiceImpl) PlaceOrder(ctx context.Context, customerRef any, items map[string]any) (*model.PurchaseResult, error) {
	var result *model.PurchaseResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accepted, err := filterItems(tx, items)
		if err != nil {
			return err
		}
		if len(accepted) == 0 {
			return ErrInvalidItems
		}

		customerID, err := resolveCustomer(tx, customerRef)
		if err != nil {
			return err
		}

		basket := model.OrderBasket{
			CustomerID: customerID,
			Datetime:   time.Now().UTC().Unix(),
		}
		if err := tx.Omit(clause.Associations).Create(&basket).Error; err != nil {
			// The foreign key constraint is the only existence check for a
			// numeric customer id.
			return fmt.Errorf("%w: %v", ErrCustomerNotFound, err)
		}

		purchase := make(map[string]float64, len(accepted))
		for productID, volume := range accepted {
			item := model.OrderVolume{
				OrderID:   basket.ID,
				ProductID: productID,
				Volume:    volume,
			}
			if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create line item: %w", err)
			}

			// No floor at zero: inventory may go negative.
			if err := tx.Model(&model.Product{}).
				Where("id = ?", productID).
				UpdateColumn("inventory", gorm.Expr("inventory - ?", volume)).Error; err != nil {
				return fmt.Errorf("failed to decrement inventory: %w", err)
			}

			purchase[strconv.FormatInt(productID, 10)] = volume
		}

		result = &model.PurchaseResult{
			Order:      basket.ID,
			Purchase:   purchase,
			CustomerID: customerID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// filterItems drops entries whose key is not an integer product id, whose
// quantity does not parse as a non-negative number, or whose product does not
// exist. Partial validity is tolerated; only the survivors are purchased.
func filterItems(tx *gorm.DB, items map[string]any) (map[int64]float64, error) {
	accepted := make(map[int64]float64)
	for key, raw := range items {
		productID, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			continue
		}
		volume, ok := parseVolume(raw)
		if !ok || volume < 0 {
			continue
		}

		var count int64
		if err := tx.Model(&model.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check product %d: %w", productID, err)
		}
		if count == 0 {
			continue
		}

		accepted[productID] = volume
	}
	return accepted, nil
}

// parseVolume accepts JSON numbers and numeric strings.
func parseVolume(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// resolveCustomer maps a numeric reference to an existing customer id and a
// name reference to a freshly inserted row. Names must be letters and spaces
// only; anything else is rejected.
func resolveCustomer(tx *gorm.DB, ref any) (int64, error) {
	switch v := ref.(type) {
	case float64:
		return int64(v), nil
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return id, nil
		}
		if !isName(v) {
			return 0, ErrInvalidCustomer
		}
		customer := model.Customer{Name: v}
		if err := tx.Create(&customer).Error; err != nil {
			return 0, fmt.Errorf("failed to create customer: %w", err)
		}
		return customer.ID, nil
	default:
		return 0, ErrInvalidCustomer
	}
}

// isName reports whether s is non-empty and made of letters and spaces.
func isName(s string) bool {
	seen := false
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if !unicode.IsLetter(r) {
			return false
		}
		seen = true
	}
	return seen
}
