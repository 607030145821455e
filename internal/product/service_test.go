// AngelaMos | 2026
// service_test.go

package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type fakeRepository struct {
	Repository
	products map[int64]*Product
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		products: make(map[int64]*Product),
		nextID:   1,
	}
}

func (f *fakeRepository) Create(_ context.Context, product *Product) error {
	product.ID = f.nextID
	product.IsActive = true
	f.nextID++
	f.products[product.ID] = product
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	copied := *product
	return &copied, nil
}

func (f *fakeRepository) Update(_ context.Context, product *Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id int64) error {
	product, ok := f.products[id]
	if !ok || !product.IsActive {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}
	product.IsActive = false
	return nil
}

func seedProduct(t *testing.T, repo *fakeRepository, sellerID int64, active bool) *Product {
	t.Helper()

	product := &Product{
		SellerID: sellerID,
		Name:     "Mate Imperial",
		Price:    decimal.NewFromFloat(45.00),
		Stock:    12,
		Category: "kitchen",
	}
	require.NoError(t, repo.Create(context.Background(), product))
	product.IsActive = active
	return product
}

func TestCreateValidatesPrice(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Create(context.Background(), 10, CreateProductRequest{
		Name:     "Gratis",
		Price:    decimal.Zero,
		Category: "misc",
	})
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	_, err = svc.Create(context.Background(), 10, CreateProductRequest{
		Name:     "Descuento",
		Price:    decimal.NewFromFloat(-5),
		Category: "misc",
	})
	assert.Error(t, err)
}

func TestGetHidesInactive(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	active := seedProduct(t, repo, 10, true)
	inactive := seedProduct(t, repo, 10, false)

	got, err := svc.Get(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = svc.Get(ctx, inactive.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("missing product reads as 404 even for strangers", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.Update(ctx, 99, 12345, UpdateProductRequest{})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)
		product := seedProduct(t, repo, 10, true)

		_, err := svc.Update(ctx, 99, product.ID, UpdateProductRequest{})
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("owner patches", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)
		product := seedProduct(t, repo, 10, true)

		stock := 3
		updated, err := svc.Update(ctx, 10, product.ID, UpdateProductRequest{
			Stock: &stock,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Stock)
		assert.Equal(t, "Mate Imperial", updated.Name)
	})

	t.Run("owner cannot patch to a non-positive price", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)
		product := seedProduct(t, repo, 10, true)

		zero := decimal.Zero
		_, err := svc.Update(ctx, 10, product.ID, UpdateProductRequest{
			Price: &zero,
		})
		assert.Error(t, err)
	})
}

func TestDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)
	product := seedProduct(t, repo, 10, true)

	assert.ErrorIs(t, svc.Delete(ctx, 99, product.ID), core.ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, 10, product.ID))

	// soft-deleted products vanish from the public view
	_, err := svc.Get(ctx, product.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSellerOf(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)

	active := seedProduct(t, repo, 10, true)
	inactive := seedProduct(t, repo, 11, false)

	sellerID, err := svc.SellerOf(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), sellerID)

	_, err = svc.SellerOf(ctx, inactive.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
