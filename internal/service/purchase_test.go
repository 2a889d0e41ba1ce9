package service

import (
	"context"
	"testing"

	"github.com/talktobrent/product-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder_NewCustomerByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	result, err := svc.PlaceOrder(context.Background(), "brent", map[string]any{"2": 1.0})
	require.NoError(t, err)

	assert.Equal(t, int64(6), result.Order)
	assert.Equal(t, int64(4), result.CustomerID)
	assert.Equal(t, map[string]float64{"2": 1}, result.Purchase)

	var customer model.Customer
	require.NoError(t, db.First(&customer, 4).Error)
	assert.Equal(t, "brent", customer.Name)
}

func TestPlaceOrder_ExistingCustomerID(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	// JSON numbers arrive as float64.
	result, err := svc.PlaceOrder(context.Background(), float64(3), map[string]any{"2": 1.0})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.CustomerID)
	assert.Equal(t, int64(6), result.Order)
}

func TestPlaceOrder_NumericStringCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	result, err := svc.PlaceOrder(context.Background(), "3", map[string]any{"2": 1.0})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.CustomerID)
}

func TestPlaceOrder_UnknownCustomerID(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	_, err := svc.PlaceOrder(context.Background(), float64(9), map[string]any{"2": 1.0})
	require.ErrorIs(t, err, ErrCustomerNotFound)

	// The rejected order must leave no trace.
	var baskets, volumes int64
	require.NoError(t, db.Model(&model.OrderBasket{}).Count(&baskets).Error)
	require.NoError(t, db.Model(&model.OrderVolume{}).Count(&volumes).Error)
	assert.Equal(t, int64(5), baskets)
	assert.Equal(t, int64(6), volumes)
}

func TestPlaceOrder_InvalidCustomerInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	for _, ref := range []any{"b0b!", "3.5", true, nil} {
		_, err := svc.PlaceOrder(context.Background(), ref, map[string]any{"2": 1.0})
		assert.ErrorIs(t, err, ErrInvalidCustomer, "customer ref %v", ref)
	}
}

func TestPlaceOrder_AllItemsInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	items := map[string]any{
		"50":  1.0,   // product does not exist
		"2":   "hhh", // quantity does not parse
		"oil": 1.0,   // product id is not an integer
		"3":   -2.0,  // negative quantity
	}
	_, err := svc.PlaceOrder(context.Background(), float64(3), items)
	require.ErrorIs(t, err, ErrInvalidItems)
}

func TestPlaceOrder_FiltersInvalidItemsSilently(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	items := map[string]any{
		"1":  2.0,
		"3":  "1.5", // numeric strings are accepted
		"50": 1.0,
		"2":  "bad",
	}
	result, err := svc.PlaceOrder(context.Background(), float64(1), items)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"1": 2, "3": 1.5}, result.Purchase)

	var volumes int64
	require.NoError(t, db.Model(&model.OrderVolume{}).Where("order_id = ?", result.Order).Count(&volumes).Error)
	assert.Equal(t, int64(2), volumes)
}

func TestPlaceOrder_DecrementsInventory(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	_, err := svc.PlaceOrder(context.Background(), float64(1), map[string]any{"1": 2.5, "2": 1.0})
	require.NoError(t, err)

	var tire, bike, oil model.Product
	require.NoError(t, db.First(&tire, 1).Error)
	require.NoError(t, db.First(&bike, 2).Error)
	require.NoError(t, db.First(&oil, 3).Error)

	assert.Equal(t, 7.5, tire.Inventory) // 10 - 2.5
	assert.Equal(t, 4.0, bike.Inventory) // 5 - 1
	assert.Equal(t, 20.0, oil.Inventory) // untouched
}

func TestPlaceOrder_AllowsNegativeInventory(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	_, err := svc.PlaceOrder(context.Background(), float64(1), map[string]any{"2": 100.0})
	require.NoError(t, err)

	var bike model.Product
	require.NoError(t, db.First(&bike, 2).Error)
	assert.Equal(t, -95.0, bike.Inventory)
}

func TestIsName(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"brent", true},
		{"mary ann", true},
		{"  ", false},
		{"", false},
		{"b0b", false},
		{"b!", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isName(tc.in), "isName(%q)", tc.in)
	}
}
