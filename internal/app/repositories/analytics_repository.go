package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

// AnalyticsRepository reads membership/content aggregates. It owns no
// entities and never mutates; everything here is recomputed per call.
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// CommunityAggregate is one community with the counters the trending
// classification is computed from.
type CommunityAggregate struct {
	Community     models.Community
	TotalMembers  int64
	NewMembers24h int64
	TotalPosts    int64
}

// ActivityDay is one calendar day of aggregated community activity
type ActivityDay struct {
	Date        time.Time
	NewMembers  int64
	NewPosts    int64
	NewComments int64
}

// Aggregates returns membership/post counters for every community, with the
// 24-hour new-member window anchored at asOf. Classification and ordering are
// applied by the caller, not in SQL.
func (r *AnalyticsRepository) Aggregates(ctx context.Context, asOf time.Time) ([]CommunityAggregate, error) {
	query := `
		SELECT
			c.id, c.slug, c.name, c.description, c.rules, c.guidelines, c.created_at, c.updated_at,
			COUNT(DISTINCT cm.user_id) AS total_members,
			COUNT(DISTINCT CASE
				WHEN cm.joined_at >= $1 AND cm.joined_at <= $2 THEN cm.user_id
			END) AS new_members_24h,
			COUNT(DISTINCT p.id) AS total_posts
		FROM communities c
		LEFT JOIN community_members cm ON cm.community_id = c.id
		LEFT JOIN posts p ON p.community_id = c.id
		GROUP BY c.id`

	rows, err := r.db.Query(ctx, query, asOf.Add(-24*time.Hour), asOf)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	aggregates := []CommunityAggregate{}
	for rows.Next() {
		var agg CommunityAggregate
		err := rows.Scan(
			&agg.Community.ID,
			&agg.Community.Slug,
			&agg.Community.Name,
			&agg.Community.Description,
			&agg.Community.Rules,
			&agg.Community.Guidelines,
			&agg.Community.CreatedAt,
			&agg.Community.UpdatedAt,
			&agg.TotalMembers,
			&agg.NewMembers24h,
			&agg.TotalPosts,
		)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		aggregates = append(aggregates, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return aggregates, nil
}

// CountMembers counts the members of a community
func (r *AnalyticsRepository) CountMembers(ctx context.Context, communityID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM community_members WHERE community_id = $1`, communityID)
}

// CountPosts counts the posts of a community
func (r *AnalyticsRepository) CountPosts(ctx context.Context, communityID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE community_id = $1`, communityID)
}

// CountComments counts comments across all of a community's posts
func (r *AnalyticsRepository) CountComments(ctx context.Context, communityID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		WHERE p.community_id = $1`
	return r.count(ctx, query, communityID)
}

func (r *AnalyticsRepository) count(ctx context.Context, query, communityID string) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, query, communityID).Scan(&count); err != nil {
		return 0, apperrors.NewStorageError(err)
	}
	return count, nil
}

// DailyActivity aggregates joins, posts and comments per calendar day within
// [since, until]. Days with no activity in any category produce no row.
func (r *AnalyticsRepository) DailyActivity(ctx context.Context, communityID string, since, until time.Time) ([]ActivityDay, error) {
	query := `
		SELECT
			activity.day,
			SUM(activity.new_members) AS new_members,
			SUM(activity.new_posts) AS new_posts,
			SUM(activity.new_comments) AS new_comments
		FROM (
			SELECT cm.joined_at::date AS day, 1 AS new_members, 0 AS new_posts, 0 AS new_comments
			FROM community_members cm
			WHERE cm.community_id = $1 AND cm.joined_at BETWEEN $2 AND $3
			UNION ALL
			SELECT p.created_at::date, 0, 1, 0
			FROM posts p
			WHERE p.community_id = $1 AND p.created_at BETWEEN $2 AND $3
			UNION ALL
			SELECT c.created_at::date, 0, 0, 1
			FROM comments c
			JOIN posts p ON p.id = c.post_id
			WHERE p.community_id = $1 AND c.created_at BETWEEN $2 AND $3
		) activity
		GROUP BY activity.day
		ORDER BY activity.day DESC
		LIMIT 30`

	rows, err := r.db.Query(ctx, query, communityID, since, until)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	days := []ActivityDay{}
	for rows.Next() {
		var day ActivityDay
		if err := rows.Scan(&day.Date, &day.NewMembers, &day.NewPosts, &day.NewComments); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return days, nil
}
