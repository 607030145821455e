// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type Repository interface {
	InsertOrder(ctx context.Context, order *Order) error
	InsertItems(ctx context.Context, orderID int64, items []OrderItem) error
	GetProductForUpdate(ctx context.Context, productID int64) (*LockedProduct, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	ListItems(ctx context.Context, orderID int64) ([]OrderItem, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) InsertOrder(ctx context.Context, order *Order) error {
	query := `
		INSERT INTO orders (user_id, total, status, shipping_address, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, ordered_at`

	err := r.db.GetContext(ctx, order, query,
		order.UserID,
		order.Total,
		order.Status,
		order.ShippingAddress,
		order.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *repository) InsertItems(
	ctx context.Context,
	orderID int64,
	items []OrderItem,
) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price,
		                         subtotal)
		VALUES ($1, $2, $3, $4, $5)`

	for _, item := range items {
		_, err := r.db.ExecContext(ctx, query,
			orderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

func (r *repository) GetProductForUpdate(
	ctx context.Context,
	productID int64,
) (*LockedProduct, error) {
	query := `
		SELECT id, seller_id, price, stock, is_active
		FROM products
		WHERE id = $1
		FOR UPDATE`

	var product LockedProduct
	err := r.db.GetContext(ctx, &product, query, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock product: %w", err)
	}

	return &product, nil
}

func (r *repository) DecrementStock(
	ctx context.Context,
	productID int64,
	quantity int,
) error {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2`

	result, err := r.db.ExecContext(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("decrement stock: %w", core.ErrInvalidInput)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := `
		SELECT id, user_id, total, status, shipping_address, notes, ordered_at
		FROM orders
		WHERE id = $1`

	var order Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &order, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID int64,
) ([]Order, error) {
	query := `
		SELECT id, user_id, total, status, shipping_address, notes, ordered_at
		FROM orders
		WHERE user_id = $1
		ORDER BY ordered_at DESC`

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (r *repository) ListItems(
	ctx context.Context,
	orderID int64,
) ([]OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	var items []OrderItem
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	return items, nil
}
