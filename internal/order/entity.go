// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type Order struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	Total           decimal.Decimal `db:"total"`
	Status          string          `db:"status"`
	ShippingAddress string          `db:"shipping_address"`
	Notes           string          `db:"notes"`
	OrderedAt       time.Time       `db:"ordered_at"`
}

type OrderItem struct {
	ID        int64           `db:"id"`
	OrderID   int64           `db:"order_id"`
	ProductID int64           `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}

// LockedProduct is the slice of a product row held under FOR UPDATE
// while an order is assembled.
type LockedProduct struct {
	ID       int64           `db:"id"`
	SellerID int64           `db:"seller_id"`
	Price    decimal.Decimal `db:"price"`
	Stock    int             `db:"stock"`
	IsActive bool            `db:"is_active"`
}
