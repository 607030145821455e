// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/mercadito/internal/core"
)

func insufficientStockError(productID int64) *core.AppError {
	return core.NewAppError(
		core.ErrInvalidInput,
		fmt.Sprintf("insufficient stock for product %d", productID),
		http.StatusBadRequest,
		"INSUFFICIENT_STOCK",
	)
}

func inactiveProductError(productID int64) *core.AppError {
	return core.NewAppError(
		core.ErrInvalidInput,
		fmt.Sprintf("product %d is not available", productID),
		http.StatusBadRequest,
		"VALIDATION_ERROR",
	)
}

type Service struct {
	db   *sqlx.DB
	repo Repository
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:   db,
		repo: NewRepository(db),
	}
}

// Create places an order atomically: every product row is locked and
// every line validated before the first write, so a failing line leaves
// no partial order and no stock change behind.
func (s *Service) Create(
	ctx context.Context,
	userID int64,
	req CreateOrderRequest,
) (*OrderResponse, error) {
	var resp *OrderResponse

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		// Lock rows in ascending product id so two concurrent orders
		// over the same products cannot deadlock.
		locked := make(map[int64]*LockedProduct, len(req.Items))
		for _, id := range sortedProductIDs(req.Items) {
			product, err := repo.GetProductForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = product
		}

		items, total, err := buildOrderLines(req.Items, locked)
		if err != nil {
			return err
		}

		order := &Order{
			UserID:          userID,
			Total:           total,
			Status:          StatusPending,
			ShippingAddress: req.ShippingAddress,
			Notes:           req.Notes,
		}

		if err := repo.InsertOrder(ctx, order); err != nil {
			return err
		}

		if err := repo.InsertItems(ctx, order.ID, items); err != nil {
			return err
		}

		for _, item := range items {
			if err := repo.DecrementStock(
				ctx,
				item.ProductID,
				item.Quantity,
			); err != nil {
				return err
			}
		}

		r := ToOrderResponse(order, items)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	userID int64,
) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns an order with its items. Existence is checked before
// ownership so strangers cannot probe order ids.
func (s *Service) Get(
	ctx context.Context,
	userID, orderID int64,
) (*OrderResponse, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, fmt.Errorf("get order: %w", core.ErrForbidden)
	}

	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, items)
	return &resp, nil
}

// buildOrderLines validates every requested line against the locked
// product rows and prices the order. Quantities for the same product
// repeated across lines are validated against the combined demand.
func buildOrderLines(
	requested []OrderItemRequest,
	locked map[int64]*LockedProduct,
) ([]OrderItem, decimal.Decimal, error) {
	demand := make(map[int64]int, len(requested))
	for _, line := range requested {
		demand[line.ProductID] += line.Quantity
	}

	for productID, quantity := range demand {
		product, ok := locked[productID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf(
				"build order lines: product %d: %w",
				productID,
				core.ErrNotFound,
			)
		}
		if !product.IsActive {
			return nil, decimal.Zero, inactiveProductError(productID)
		}
		if product.Stock < quantity {
			return nil, decimal.Zero, insufficientStockError(productID)
		}
	}

	items := make([]OrderItem, 0, len(requested))
	total := decimal.Zero

	for _, line := range requested {
		product := locked[line.ProductID]
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))

		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	return items, total, nil
}

func sortedProductIDs(items []OrderItemRequest) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
