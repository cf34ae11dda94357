package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/Masterminds/squirrel"
	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// PostWithMeta is one post row joined with its author and comment count
type PostWithMeta struct {
	Post         models.Post
	Author       models.User
	CommentCount int64
}

const postJoinQuery = `
	SELECT
		p.id, p.community_id, p.author_id, p.title, p.content, p.image, p.created_at, p.updated_at,
		u.id, u.wallet_address, u.name, u.profile_picture,
		COUNT(c.id) AS comment_count
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN comments c ON c.post_id = p.id`

func scanPostRows(rows pgx.Rows) ([]PostWithMeta, error) {
	posts := []PostWithMeta{}
	for rows.Next() {
		var row PostWithMeta
		err := rows.Scan(
			&row.Post.ID,
			&row.Post.CommunityID,
			&row.Post.AuthorID,
			&row.Post.Title,
			&row.Post.Content,
			&row.Post.Image,
			&row.Post.CreatedAt,
			&row.Post.UpdatedAt,
			&row.Author.ID,
			&row.Author.WalletAddress,
			&row.Author.Name,
			&row.Author.ProfilePicture,
			&row.CommentCount,
		)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		posts = append(posts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return posts, nil
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, communityID, authorID, title, content string, image *string) (*models.Post, error) {
	query := `
		INSERT INTO posts (id, community_id, author_id, title, content, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, community_id, author_id, title, content, image, created_at, updated_at`

	var p models.Post
	err := r.db.QueryRow(ctx, query, uuid.NewString(), communityID, authorID, title, content, image).Scan(
		&p.ID, &p.CommunityID, &p.AuthorID, &p.Title, &p.Content, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return &p, nil
}

// GetByID retrieves one post with author and comment count
func (r *PostRepository) GetByID(ctx context.Context, id string) (*PostWithMeta, error) {
	query := postJoinQuery + `
	WHERE p.id = $1
	GROUP BY p.id, u.id`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	posts, err := scanPostRows(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, apperrors.ErrPostNotFound
	}
	return &posts[0], nil
}

// ListByCommunity returns a community's posts, newest first
func (r *PostRepository) ListByCommunity(ctx context.Context, communityID string) ([]PostWithMeta, error) {
	query := postJoinQuery + `
	WHERE p.community_id = $1
	GROUP BY p.id, u.id
	ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, communityID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	return scanPostRows(rows)
}

// Delete removes a post by id
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	query := squirrel.Delete("posts").
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
		return apperrors.ErrPostNotFound
	}
	return nil
}

// AuthorID returns the author of a post without loading the full row
func (r *PostRepository) AuthorID(ctx context.Context, id string) (string, error) {
	var authorID string
	err := r.db.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrPostNotFound
		}
		return "", apperrors.NewStorageError(err)
	}
	return authorID, nil
}
