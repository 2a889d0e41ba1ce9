package model

// OrderBasket groups the line items of one purchase for one customer. The
// status fields start out null and are not mutated by the current API surface.
// Datetime is unix seconds, set when the order is placed.
type OrderBasket struct {
	ID         int64    `json:"id" gorm:"primaryKey"`
	CustomerID int64    `json:"customer_id" gorm:"not null;index"`
	Customer   Customer `json:"-" gorm:"foreignKey:CustomerID"`
	Datetime   int64    `json:"datetime"`
	Ready      *bool    `json:"ready"`
	OnItsWay   *bool    `json:"on_its_way"`
	Delivered  *bool    `json:"delivered"`
}

// OrderVolume is one product-quantity line item within an order. Identity is
// the (order, product) pair.
type OrderVolume struct {
	OrderID   int64       `json:"order_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID int64       `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	Volume    float64     `json:"volume"`
	Basket    OrderBasket `json:"-" gorm:"foreignKey:OrderID"`
	Product   Product     `json:"-" gorm:"foreignKey:ProductID"`
}

// OrderSummary is one order in a customer's history. Line items sharing the
// order are collapsed into Products, keyed by product id and then product
// name. The JSON keys with spaces are part of the wire contract.
type OrderSummary struct {
	Datetime  string                        `json:"datetime"`
	Ready     *bool                         `json:"ready"`
	OnItsWay  *bool                         `json:"on its way"`
	Delivered *bool                         `json:"delivered"`
	Products  map[string]map[string]float64 `json:"products"`
	OrderID   string                        `json:"order id"`
}

// ProductSales is one product's aggregated volume within a report bucket.
type ProductSales struct {
	Volume    float64 `json:"volume"`
	Name      string  `json:"name"`
	ProductID int64   `json:"product id"`
}

// PurchaseRequest is the purchase endpoint body. Customer may arrive as a
// number or a string; product quantities may be numbers or numeric strings.
type PurchaseRequest struct {
	Customer any            `json:"customer"`
	Products map[string]any `json:"products"`
}

// PurchaseResult is the successful purchase response.
type PurchaseResult struct {
	Order      int64              `json:"order"`
	Purchase   map[string]float64 `json:"purchase"`
	CustomerID int64              `json:"customer_id"`
}
