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

// MemberRepository handles database operations for community memberships
type MemberRepository struct {
	db *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{db: db}
}

// Add records a membership. A duplicate (community, user) pair is rejected by
// the unique constraint and surfaced as ErrAlreadyMember.
func (r *MemberRepository) Add(ctx context.Context, communityID, userID string, role models.MemberRole) error {
	return r.add(ctx, r.db, communityID, userID, role)
}

// AddTx is Add running inside a caller-owned transaction
func (r *MemberRepository) AddTx(ctx context.Context, tx pgx.Tx, communityID, userID string, role models.MemberRole) error {
	return r.add(ctx, tx, communityID, userID, role)
}

func (r *MemberRepository) add(ctx context.Context, q querier, communityID, userID string, role models.MemberRole) error {
	query := squirrel.Insert("community_members").
		Columns("id", "community_id", "user_id", "role", "joined_at").
		Values(uuid.NewString(), communityID, userID, string(role), squirrel.Expr("NOW()")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyMember
		}
		return apperrors.NewStorageError(err)
	}
	return nil
}

// Remove deletes a membership
func (r *MemberRepository) Remove(ctx context.Context, communityID, userID string) error {
	query := squirrel.Delete("community_members").
		Where("community_id = ?", communityID).
		Where("user_id = ?", userID).
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
		return apperrors.ErrNotMember
	}
	return nil
}

// GetRole returns the caller's role in a community, or ErrNotMember.
func (r *MemberRepository) GetRole(ctx context.Context, communityID, userID string) (models.MemberRole, error) {
	var role string
	query := `SELECT role FROM community_members WHERE community_id = $1 AND user_id = $2`
	err := r.db.QueryRow(ctx, query, communityID, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotMember
		}
		return "", apperrors.NewStorageError(err)
	}
	return models.MemberRole(role), nil
}

// IsMember reports whether the user belongs to the community
func (r *MemberRepository) IsMember(ctx context.Context, communityID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM community_members WHERE community_id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, query, communityID, userID).Scan(&exists); err != nil {
		return false, apperrors.NewStorageError(err)
	}
	return exists, nil
}

// List returns the members of a community with their user rows, newest first.
// A limit of 0 returns everyone.
func (r *MemberRepository) List(ctx context.Context, communityID string, limit int) ([]models.CommunityMember, error) {
	query := `
		SELECT
			cm.id, cm.community_id, cm.user_id, cm.role, cm.joined_at,
			u.id, u.wallet_address, u.name, u.profile_picture
		FROM community_members cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.community_id = $1
		ORDER BY cm.joined_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.db.Query(ctx, query, communityID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	members := []models.CommunityMember{}
	for rows.Next() {
		var m models.CommunityMember
		var u models.User
		err := rows.Scan(
			&m.ID,
			&m.CommunityID,
			&m.UserID,
			&m.Role,
			&m.JoinedAt,
			&u.ID,
			&u.WalletAddress,
			&u.Name,
			&u.ProfilePicture,
		)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		m.User = &u
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return members, nil
}
