// AngelaMos | 2026
// service_test.go

package rating

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type fakeProductLookup struct {
	sellers map[int64]int64
}

func (f *fakeProductLookup) SellerOf(
	_ context.Context,
	productID int64,
) (int64, error) {
	sellerID, ok := f.sellers[productID]
	if !ok {
		return 0, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	return sellerID, nil
}

type fakeRepository struct {
	Repository
	ratings map[[2]int64]*Rating
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		ratings: make(map[[2]int64]*Rating),
		nextID:  1,
	}
}

func (f *fakeRepository) Create(_ context.Context, rating *Rating) error {
	key := [2]int64{rating.UserID, rating.ProductID}
	if _, exists := f.ratings[key]; exists {
		return fmt.Errorf("create rating: %w", core.ErrDuplicateKey)
	}

	rating.ID = f.nextID
	f.nextID++
	f.ratings[key] = rating
	return nil
}

func (f *fakeRepository) GetByUserAndProduct(
	_ context.Context,
	userID, productID int64,
) (*Rating, error) {
	rating, ok := f.ratings[[2]int64{userID, productID}]
	if !ok {
		return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
	}
	copied := *rating
	return &copied, nil
}

func (f *fakeRepository) Update(_ context.Context, rating *Rating) error {
	key := [2]int64{rating.UserID, rating.ProductID}
	if _, ok := f.ratings[key]; !ok {
		return fmt.Errorf("update rating: %w", core.ErrNotFound)
	}
	f.ratings[key] = rating
	return nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	lookup := &fakeProductLookup{sellers: map[int64]int64{
		100: 1, // product 100 sold by user 1
		200: 2,
	}}
	return NewService(repo, lookup), repo
}

func TestCreateRating(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer rates another seller's product", func(t *testing.T) {
		svc, _ := newTestService()

		rating, err := svc.Create(ctx, 5, 100, CreateRatingRequest{
			Score:   4,
			Comment: "muy bueno",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, rating.Score)
		assert.Equal(t, int64(100), rating.ProductID)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, 5, 999, CreateRatingRequest{Score: 3})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("self rating rejected", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, 1, 100, CreateRatingRequest{Score: 5})
		require.Error(t, err)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SELF_RATING", appErr.Code)
	})

	t.Run("second rating rejected", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, 5, 100, CreateRatingRequest{Score: 4})
		require.NoError(t, err)

		_, err = svc.Create(ctx, 5, 100, CreateRatingRequest{Score: 2})
		require.Error(t, err)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_RATING", appErr.Code)
	})

	t.Run("same user may rate different products", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, 5, 100, CreateRatingRequest{Score: 4})
		require.NoError(t, err)

		_, err = svc.Create(ctx, 5, 200, CreateRatingRequest{Score: 5})
		assert.NoError(t, err)
	})
}

func TestUpdateMine(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, 5, 100, CreateRatingRequest{
		Score:   2,
		Comment: "regular",
	})
	require.NoError(t, err)

	t.Run("partial patch keeps other fields", func(t *testing.T) {
		score := 4
		updated, err := svc.UpdateMine(ctx, 5, 100, UpdateRatingRequest{
			Score: &score,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Score)
		assert.Equal(t, "regular", updated.Comment)
	})

	t.Run("no rating yet", func(t *testing.T) {
		score := 4
		_, err := svc.UpdateMine(ctx, 6, 100, UpdateRatingRequest{Score: &score})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestBuildStats(t *testing.T) {
	t.Run("average rounds to two decimals", func(t *testing.T) {
		stats := buildStats(100, map[int]int{5: 1, 4: 1, 3: 1})
		assert.Equal(t, 4.0, stats.Average)
		assert.Equal(t, 3, stats.Total)

		stats = buildStats(100, map[int]int{5: 2, 2: 1})
		assert.Equal(t, 4.0, stats.Average)

		stats = buildStats(100, map[int]int{5: 1, 4: 1, 1: 1})
		assert.Equal(t, 3.33, stats.Average)
	})

	t.Run("empty distribution", func(t *testing.T) {
		stats := buildStats(100, map[int]int{})
		assert.Equal(t, 0.0, stats.Average)
		assert.Equal(t, 0, stats.Total)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Distribution)
	})

	t.Run("all buckets present", func(t *testing.T) {
		stats := buildStats(100, map[int]int{5: 3})
		assert.Len(t, stats.Distribution, 5)
		assert.Equal(t, 3, stats.Distribution[5])
		assert.Equal(t, 0, stats.Distribution[1])
	})
}
