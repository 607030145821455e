// AngelaMos | 2026
// service.go

package rating

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/carterperez-dev/mercadito/internal/core"
)

func duplicateRatingError() *core.AppError {
	return core.NewAppError(
		core.ErrDuplicateKey,
		"you have already rated this product",
		http.StatusBadRequest,
		"DUPLICATE_RATING",
	)
}

func selfRatingError() *core.AppError {
	return core.NewAppError(
		core.ErrInvalidInput,
		"you cannot rate your own product",
		http.StatusBadRequest,
		"SELF_RATING",
	)
}

// ProductLookup resolves the seller of a live product. Missing and
// deactivated products both surface core.ErrNotFound.
type ProductLookup interface {
	SellerOf(ctx context.Context, productID int64) (int64, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{
		repo:     repo,
		products: products,
	}
}

// Create enforces the one-rating-per-buyer rule. The unique constraint
// on (user_id, product_id) stays the final authority under races.
func (s *Service) Create(
	ctx context.Context,
	userID, productID int64,
	req CreateRatingRequest,
) (*Rating, error) {
	sellerID, err := s.products.SellerOf(ctx, productID)
	if err != nil {
		return nil, err
	}

	if sellerID == userID {
		return nil, selfRatingError()
	}

	rating := &Rating{
		UserID:    userID,
		ProductID: productID,
		Score:     req.Score,
		Comment:   req.Comment,
	}

	if err := s.repo.Create(ctx, rating); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, duplicateRatingError()
		}
		return nil, err
	}

	return rating, nil
}

func (s *Service) ListForProduct(
	ctx context.Context,
	productID int64,
) ([]RatingWithUser, error) {
	if _, err := s.products.SellerOf(ctx, productID); err != nil {
		return nil, err
	}

	return s.repo.ListByProduct(ctx, productID)
}

func (s *Service) Stats(
	ctx context.Context,
	productID int64,
) (*RatingStatsResponse, error) {
	if _, err := s.products.SellerOf(ctx, productID); err != nil {
		return nil, err
	}

	distribution, err := s.repo.Distribution(ctx, productID)
	if err != nil {
		return nil, err
	}

	return buildStats(productID, distribution), nil
}

func (s *Service) UpdateMine(
	ctx context.Context,
	userID, productID int64,
	req UpdateRatingRequest,
) (*Rating, error) {
	rating, err := s.repo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(rating)

	if err := s.repo.Update(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *Service) DeleteMine(
	ctx context.Context,
	userID, productID int64,
) error {
	if err := s.repo.Delete(ctx, userID, productID); err != nil {
		return fmt.Errorf("delete own rating: %w", err)
	}
	return nil
}

func (s *Service) ListMine(
	ctx context.Context,
	userID int64,
) ([]Rating, error) {
	return s.repo.ListByUser(ctx, userID)
}

func buildStats(productID int64, distribution map[int]int) *RatingStatsResponse {
	total := 0
	sum := 0
	full := make(map[int]int, 5)

	for score := 1; score <= 5; score++ {
		count := distribution[score]
		full[score] = count
		total += count
		sum += score * count
	}

	average := 0.0
	if total > 0 {
		average = math.Round(float64(sum)/float64(total)*100) / 100
	}

	return &RatingStatsResponse{
		ProductID:    productID,
		Average:      average,
		Total:        total,
		Distribution: full,
	}
}
