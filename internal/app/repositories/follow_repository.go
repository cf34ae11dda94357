package repositories

import (
	"fmt"

	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/dberrors"
)

// FollowRepository handles database operations for follow relationships
type FollowRepository struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create records a follow relationship. A duplicate pair is rejected by the
// unique constraint and surfaced as ErrAlreadyFollowing.
func (r *FollowRepository) Create(ctx context.Context, followerID, followingID string) error {
	query := squirrel.Insert("follows").
		Columns("id", "follower_id", "following_id", "created_at").
		Values(uuid.NewString(), followerID, followingID, squirrel.Expr("NOW()")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyFollowing
		}
		return apperrors.NewStorageError(err)
	}
	return nil
}

// Delete removes a follow relationship. Unfollowing someone never followed is
// a no-op, matching the idempotent unfollow of the original surface.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	query := squirrel.Delete("follows").
		Where("follower_id = ?", followerID).
		Where("following_id = ?", followingID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// Exists reports whether follower already follows following
func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	if err := r.db.QueryRow(ctx, query, followerID, followingID).Scan(&exists); err != nil {
		return false, apperrors.NewStorageError(err)
	}
	return exists, nil
}
