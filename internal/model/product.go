package model

// Product is a catalog item. The catalog is seeded at startup and never
// extended through the API; only Inventory is mutated, by purchases.
type Product struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name"`
	Inventory float64 `json:"inventory"`
}
