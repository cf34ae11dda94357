package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment on a post
func (r *CommentRepository) Create(ctx context.Context, postID, authorID, content string) (*models.Comment, error) {
	query := `
		INSERT INTO comments (id, post_id, author_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, post_id, author_id, content, created_at, updated_at`

	var c models.Comment
	err := r.db.QueryRow(ctx, query, uuid.NewString(), postID, authorID, content).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return &c, nil
}

// ListByPost returns a post's comments in chronological order with authors
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `
		SELECT
			c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at,
			u.id, u.wallet_address, u.name, u.profile_picture
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		var u models.User
		err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&u.ID, &u.WalletAddress, &u.Name, &u.ProfilePicture,
		)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		c.Author = &u
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return comments, nil
}
