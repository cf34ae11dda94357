package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

const portfolioColumns = `id, user_id, title, description, image, link, tags, sort_order, created_at, updated_at`

// PortfolioRepository handles database operations for portfolio items
type PortfolioRepository struct {
	db *pgxpool.Pool
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(db *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func scanPortfolioItem(row pgx.Row) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.Description,
		&item.Image,
		&item.Link,
		&item.Tags,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert creates a portfolio item for a user
func (r *PortfolioRepository) Insert(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	query := fmt.Sprintf(`
		INSERT INTO portfolio_items (id, user_id, title, description, image, link, tags, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s`, portfolioColumns)

	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}

	created, err := scanPortfolioItem(r.db.QueryRow(ctx, query,
		uuid.NewString(), item.UserID, item.Title, item.Description, item.Image, item.Link, tags, item.SortOrder,
	))
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return created, nil
}

// GetByID retrieves one portfolio item
func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*models.PortfolioItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM portfolio_items WHERE id = $1`, portfolioColumns)

	item, err := scanPortfolioItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}
	return item, nil
}

// ListByUser returns a user's portfolio ordered by sort order, then recency
func (r *PortfolioRepository) ListByUser(ctx context.Context, userID string) ([]models.PortfolioItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM portfolio_items
		WHERE user_id = $1
		ORDER BY sort_order ASC, created_at DESC`, portfolioColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	items := []models.PortfolioItem{}
	for rows.Next() {
		var item models.PortfolioItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Description,
			&item.Image,
			&item.Link,
			&item.Tags,
			&item.SortOrder,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return items, nil
}

// Update replaces the mutable fields of a portfolio item
func (r *PortfolioRepository) Update(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	query := fmt.Sprintf(`
		UPDATE portfolio_items
		SET title = $1, description = $2, image = $3, link = $4, tags = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING %s`, portfolioColumns)

	updated, err := scanPortfolioItem(r.db.QueryRow(ctx, query,
		item.Title, item.Description, item.Image, item.Link, item.Tags, item.SortOrder, item.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}
	return updated, nil
}

// Delete removes a portfolio item
func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	query := squirrel.Delete("portfolio_items").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}
