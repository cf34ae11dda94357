package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/dberrors"
)

const communityColumns = `id, slug, name, description, rules, guidelines, created_at, updated_at`

// CommunityRepository handles database operations for communities
type CommunityRepository struct {
	db *pgxpool.Pool
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{db: db}
}

func scanCommunity(row pgx.Row) (*models.Community, error) {
	var c models.Community
	err := row.Scan(
		&c.ID,
		&c.Slug,
		&c.Name,
		&c.Description,
		&c.Rules,
		&c.Guidelines,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new community. A slug collision loses to the unique
// constraint and is surfaced as ErrSlugTaken.
func (r *CommunityRepository) Create(ctx context.Context, name, slug string, description *string) (*models.Community, error) {
	return r.create(ctx, r.db, name, slug, description)
}

// CreateTx is Create running inside a caller-owned transaction
func (r *CommunityRepository) CreateTx(ctx context.Context, tx pgx.Tx, name, slug string, description *string) (*models.Community, error) {
	return r.create(ctx, tx, name, slug, description)
}

func (r *CommunityRepository) create(ctx context.Context, q querier, name, slug string, description *string) (*models.Community, error) {
	query := fmt.Sprintf(`
		INSERT INTO communities (id, slug, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s`, communityColumns)

	community, err := scanCommunity(q.QueryRow(ctx, query, uuid.NewString(), slug, name, description))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrSlugTaken
		}
		return nil, apperrors.NewStorageError(err)
	}
	return community, nil
}

// GetBySlug retrieves a community by its slug
func (r *CommunityRepository) GetBySlug(ctx context.Context, slug string) (*models.Community, error) {
	query := fmt.Sprintf(`SELECT %s FROM communities WHERE slug = $1`, communityColumns)

	community, err := scanCommunity(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunityNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}
	return community, nil
}

// UpdateRules replaces the rules and guidelines text of a community
func (r *CommunityRepository) UpdateRules(ctx context.Context, communityID string, rules, guidelines *string) error {
	query := `UPDATE communities SET rules = $1, guidelines = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.db.Exec(ctx, query, rules, guidelines, communityID)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCommunityNotFound
	}
	return nil
}

// Counts returns the member and post counters of a single community
func (r *CommunityRepository) Counts(ctx context.Context, communityID string) (members, posts int64, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM community_members WHERE community_id = $1),
			(SELECT COUNT(*) FROM posts WHERE community_id = $1)`
	if err := r.db.QueryRow(ctx, query, communityID).Scan(&members, &posts); err != nil {
		return 0, 0, apperrors.NewStorageError(err)
	}
	return members, posts, nil
}

// CommunityWithCounts is one community row with its aggregate counters
type CommunityWithCounts struct {
	Community models.Community
	Members   int64
	Posts     int64
}

// List returns all communities, most recently created first, with member and
// post counts aggregated in a single query.
func (r *CommunityRepository) List(ctx context.Context) ([]CommunityWithCounts, error) {
	query := `
		SELECT
			c.id, c.slug, c.name, c.description, c.rules, c.guidelines, c.created_at, c.updated_at,
			COUNT(DISTINCT cm.user_id) AS member_count,
			COUNT(DISTINCT p.id) AS post_count
		FROM communities c
		LEFT JOIN community_members cm ON cm.community_id = c.id
		LEFT JOIN posts p ON p.community_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	communities := []CommunityWithCounts{}
	for rows.Next() {
		var row CommunityWithCounts
		err := rows.Scan(
			&row.Community.ID,
			&row.Community.Slug,
			&row.Community.Name,
			&row.Community.Description,
			&row.Community.Rules,
			&row.Community.Guidelines,
			&row.Community.CreatedAt,
			&row.Community.UpdatedAt,
			&row.Members,
			&row.Posts,
		)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		communities = append(communities, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return communities, nil
}
