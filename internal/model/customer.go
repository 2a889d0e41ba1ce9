package model

// Customer is a buyer. Rows are created on first purchase by name; duplicate
// names are allowed, so a name does not identify a customer.
type Customer struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`
}
