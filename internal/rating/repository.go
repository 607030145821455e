// AngelaMos | 2026
// repository.go

package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type Repository interface {
	Create(ctx context.Context, rating *Rating) error
	GetByUserAndProduct(
		ctx context.Context,
		userID, productID int64,
	) (*Rating, error)
	Update(ctx context.Context, rating *Rating) error
	Delete(ctx context.Context, userID, productID int64) error
	ListByProduct(ctx context.Context, productID int64) ([]RatingWithUser, error)
	ListByUser(ctx context.Context, userID int64) ([]Rating, error)
	Distribution(ctx context.Context, productID int64) (map[int]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rating *Rating) error {
	query := `
		INSERT INTO ratings (user_id, product_id, score, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, rating, query,
		rating.UserID,
		rating.ProductID,
		rating.Score,
		rating.Comment,
	)
	if err != nil {
		if core.IsUniqueViolation(err, "ratings_user_id_product_id_key") {
			return fmt.Errorf("create rating: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create rating: %w", err)
	}

	return nil
}

func (r *repository) GetByUserAndProduct(
	ctx context.Context,
	userID, productID int64,
) (*Rating, error) {
	query := `
		SELECT id, user_id, product_id, score, comment, created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND product_id = $2`

	var rating Rating
	err := r.db.GetContext(ctx, &rating, query, userID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rating, nil
}

func (r *repository) Update(ctx context.Context, rating *Rating) error {
	query := `
		UPDATE ratings
		SET score = $3, comment = $4, updated_at = NOW()
		WHERE user_id = $1 AND product_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &rating.UpdatedAt, query,
		rating.UserID,
		rating.ProductID,
		rating.Score,
		rating.Comment,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update rating: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}

	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	userID, productID int64,
) error {
	query := `DELETE FROM ratings WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete rating: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByProduct(
	ctx context.Context,
	productID int64,
) ([]RatingWithUser, error) {
	query := `
		SELECT r.id, r.user_id, r.product_id, r.score, r.comment,
		       r.created_at, r.updated_at,
		       u.username, u.first_name, u.last_name
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC`

	var ratings []RatingWithUser
	if err := r.db.SelectContext(ctx, &ratings, query, productID); err != nil {
		return nil, fmt.Errorf("list product ratings: %w", err)
	}

	return ratings, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID int64,
) ([]Rating, error) {
	query := `
		SELECT id, user_id, product_id, score, comment, created_at, updated_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var ratings []Rating
	if err := r.db.SelectContext(ctx, &ratings, query, userID); err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}

	return ratings, nil
}

func (r *repository) Distribution(
	ctx context.Context,
	productID int64,
) (map[int]int, error) {
	query := `
		SELECT score, COUNT(*) AS count
		FROM ratings
		WHERE product_id = $1
		GROUP BY score`

	var rows []struct {
		Score int `db:"score"`
		Count int `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, productID); err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}

	distribution := make(map[int]int, 5)
	for _, row := range rows {
		distribution[row.Score] = row.Count
	}

	return distribution, nil
}
