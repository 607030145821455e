// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func invalidPriceError() *core.AppError {
	return core.NewAppError(
		core.ErrInvalidInput,
		"price must be greater than zero",
		http.StatusBadRequest,
		"VALIDATION_ERROR",
	)
}

func (s *Service) Create(
	ctx context.Context,
	sellerID int64,
	req CreateProductRequest,
) (*Product, error) {
	if !req.Price.GreaterThan(decimal.Zero) {
		return nil, invalidPriceError()
	}

	product := &Product{
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Get serves the public detail view. Inactive products read as absent.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.IsActive {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}

	return product, nil
}

// SellerOf resolves the owner of a live product for cross-domain
// checks. Missing and deactivated products both read as absent.
func (s *Service) SellerOf(ctx context.Context, productID int64) (int64, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return 0, err
	}

	return product.SellerID, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListProductsParams,
) ([]Product, int, error) {
	return s.repo.List(ctx, params)
}

// ListMine includes the seller's deactivated listings.
func (s *Service) ListMine(
	ctx context.Context,
	sellerID int64,
) ([]Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// Update applies an owner-only patch. The existence check runs before
// the ownership check so non-owners cannot probe for hidden products.
func (s *Service) Update(
	ctx context.Context,
	userID, productID int64,
	req UpdateProductRequest,
) (*Product, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.IsOwnedBy(userID) {
		return nil, fmt.Errorf("update product: %w", core.ErrForbidden)
	}

	if req.Price != nil && !req.Price.GreaterThan(decimal.Zero) {
		return nil, invalidPriceError()
	}

	req.ApplyTo(product)

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *Service) Delete(ctx context.Context, userID, productID int64) error {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if !product.IsOwnedBy(userID) {
		return fmt.Errorf("delete product: %w", core.ErrForbidden)
	}

	return s.repo.SoftDelete(ctx, productID)
}
