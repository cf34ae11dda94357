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
	"github.com/subber-app/subber/internal/pkg/dberrors"
)

const userColumns = `id, wallet_address, name, email, bio, location, website, profile_picture, banner_image, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.WalletAddress,
		&u.Name,
		&u.Email,
		&u.Bio,
		&u.Location,
		&u.Website,
		&u.ProfilePicture,
		&u.BannerImage,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByWallet retrieves the user owning a wallet address. The match is
// byte-exact; no case folding or trimming is applied to the address.
func (r *UserRepository) FindByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE wallet_address = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, walletAddress))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}
	return user, nil
}

// userWalletConstraint is the unique constraint a concurrent insert for the
// same wallet address loses to.
const userWalletConstraint = "users_wallet_address_key"

// Insert creates a new user for a wallet address. A concurrent insert for the
// same address loses to the unique constraint and is surfaced as ErrConflict
// so the caller can retry as a lookup.
func (r *UserRepository) Insert(ctx context.Context, walletAddress, displayName string) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (id, wallet_address, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, uuid.NewString(), walletAddress, displayName))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, userWalletConstraint) {
			return nil, apperrors.ErrConflict
		}
		return nil, apperrors.NewStorageError(err)
	}
	return user, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}
	return user, nil
}

// UpdateProfile replaces the mutable profile fields of a user. Nil values
// store NULL.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, name, bio, location, website, profilePicture, bannerImage *string) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET name = $1, bio = $2, location = $3, website = $4,
		    profile_picture = $5, banner_image = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING %s`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, name, bio, location, website, profilePicture, bannerImage, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}
	return user, nil
}

// UserCounts carries the aggregate counters shown on a profile
type UserCounts struct {
	Followers int64
	Following int64
	Posts     int64
}

// GetCounts returns follower/following/post counts for a user. Aggregates
// with no matching rows yield zero.
func (r *UserRepository) GetCounts(ctx context.Context, userID string) (*UserCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1),
			(SELECT COUNT(*) FROM posts WHERE author_id = $1)`

	var counts UserCounts
	if err := r.db.QueryRow(ctx, query, userID).Scan(&counts.Followers, &counts.Following, &counts.Posts); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return &counts, nil
}

// UserWithCounts is one directory row with its aggregate counters
type UserWithCounts struct {
	User      models.User
	Followers int64
	Posts     int64
}

// List returns users ordered by most recently created, with follower and post
// counts, optionally filtered by a case-insensitive name match.
func (r *UserRepository) List(ctx context.Context, search string, limit int, offset uint64) ([]UserWithCounts, error) {
	builder := squirrel.Select(
		"u.id", "u.wallet_address", "u.name", "u.email", "u.bio", "u.location",
		"u.website", "u.profile_picture", "u.banner_image", "u.created_at", "u.updated_at",
		"COUNT(DISTINCT f.id) AS follower_count",
		"COUNT(DISTINCT p.id) AS post_count",
	).
		From("users u").
		LeftJoin("follows f ON f.following_id = u.id").
		LeftJoin("posts p ON p.author_id = u.id").
		GroupBy("u.id").
		OrderBy("u.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		builder = builder.Where("u.name ILIKE ?", "%"+search+"%")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	users := []UserWithCounts{}
	for rows.Next() {
		var row UserWithCounts
		err := rows.Scan(
			&row.User.ID,
			&row.User.WalletAddress,
			&row.User.Name,
			&row.User.Email,
			&row.User.Bio,
			&row.User.Location,
			&row.User.Website,
			&row.User.ProfilePicture,
			&row.User.BannerImage,
			&row.User.CreatedAt,
			&row.User.UpdatedAt,
			&row.Followers,
			&row.Posts,
		)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		users = append(users, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return users, nil
}

// Search matches users whose name or email contains the query,
// case-insensitively.
func (r *UserRepository) Search(ctx context.Context, q string, limit int) ([]models.User, error) {
	builder := squirrel.Select(
		"id", "wallet_address", "name", "email", "bio", "location",
		"website", "profile_picture", "banner_image", "created_at", "updated_at",
	).
		From("users").
		Where(squirrel.Or{
			squirrel.Expr("name ILIKE ?", "%"+q+"%"),
			squirrel.Expr("email ILIKE ?", "%"+q+"%"),
		}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID,
			&u.WalletAddress,
			&u.Name,
			&u.Email,
			&u.Bio,
			&u.Location,
			&u.Website,
			&u.ProfilePicture,
			&u.BannerImage,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return users, nil
}

// Count returns the number of directory rows List would match for the same
// search filter.
func (r *UserRepository) Count(ctx context.Context, search string) (int64, error) {
	builder := squirrel.Select("COUNT(*)").
		From("users u").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		builder = builder.Where("u.name ILIKE ?", "%"+search+"%")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, apperrors.NewStorageError(err)
	}
	return count, nil
}
