package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        string    `json:"id"`
	Table     int       `json:"table"`
	Name      string    `json:"name,omitempty"`
	Draft     bool      `json:"draft"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Item struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductRef is the slice of a product shown next to an order item.
type ProductRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ItemDetail struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"order_id"`
	Amount    int        `json:"amount"`
	CreatedAt time.Time  `json:"created_at"`
	Product   ProductRef `json:"product"`
}
