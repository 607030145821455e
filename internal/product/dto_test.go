// AngelaMos | 2026
// dto_test.go

package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUpdateProductRequestApplyTo(t *testing.T) {
	base := func() *Product {
		return &Product{
			ID:       1,
			SellerID: 10,
			Name:     "Mate Imperial",
			Price:    decimal.NewFromFloat(45.00),
			Stock:    12,
			Category: "kitchen",
			IsActive: true,
		}
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		p := base()
		(&UpdateProductRequest{}).ApplyTo(p)
		assert.Equal(t, base(), p)
	})

	t.Run("partial patch", func(t *testing.T) {
		p := base()
		price := decimal.NewFromFloat(49.99)
		stock := 0
		(&UpdateProductRequest{Price: &price, Stock: &stock}).ApplyTo(p)

		assert.True(t, p.Price.Equal(decimal.NewFromFloat(49.99)))
		assert.Zero(t, p.Stock)
		assert.Equal(t, "Mate Imperial", p.Name)
	})

	t.Run("is_active toggles", func(t *testing.T) {
		p := base()
		inactive := false
		(&UpdateProductRequest{IsActive: &inactive}).ApplyTo(p)
		assert.False(t, p.IsActive)
	})
}

func TestListProductsParamsNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{"defaults", 0, 0, 1, 20, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"capped page size", 2, 500, 2, 100, 100},
		{"normal", 3, 25, 3, 25, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ListProductsParams{Page: tt.page, PageSize: tt.pageSize}
			p.Normalize()

			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mate", "mate"},
		{"100%", "100\\%"},
		{"under_score", "under\\_score"},
		{"back\\slash", "back\\\\slash"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in), tt.in)
	}
}

func TestIsOwnedBy(t *testing.T) {
	p := &Product{SellerID: 10}
	assert.True(t, p.IsOwnedBy(10))
	assert.False(t, p.IsOwnedBy(11))
}
