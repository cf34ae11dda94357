package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/repositories"
)

// Trending thresholds. A community is "hot" when it gained at least
// hotNewMembers24h members in the last 24 hours; it still qualifies as
// trending when it holds more than trendingMinMembers members in total.
const (
	hotNewMembers24h   = 10
	trendingMinMembers = 20
)

// statsActivityDays is the size of the recent-activity window in days
const statsActivityDays = 30

// AnalyticsStore is the aggregate reader the analytics service computes
// from. It is satisfied by repositories.AnalyticsRepository.
type AnalyticsStore interface {
	Aggregates(ctx context.Context, asOf time.Time) ([]repositories.CommunityAggregate, error)
	CountMembers(ctx context.Context, communityID string) (int64, error)
	CountPosts(ctx context.Context, communityID string) (int64, error)
	CountComments(ctx context.Context, communityID string) (int64, error)
	DailyActivity(ctx context.Context, communityID string, since, until time.Time) ([]repositories.ActivityDay, error)
}

// AnalyticsService computes trending rankings and per-community statistics.
// Nothing is cached or persisted; every call recomputes from live counters.
type AnalyticsService interface {
	ComputeTrending(ctx context.Context) ([]dto.TrendingCommunityResponse, error)
	ComputeCommunityStats(ctx context.Context, communityID string) (*dto.CommunityStatsResponse, error)
}

type analyticsServiceImpl struct {
	store  AnalyticsStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(store AnalyticsStore, logger zerolog.Logger) AnalyticsService {
	return &analyticsServiceImpl{store: store, logger: logger, now: time.Now}
}

// ComputeTrending classifies and ranks communities. A community is included
// when it gained >= 10 members in the last 24 hours or holds > 20 members in
// total. Hot communities (the 24-hour criterion) rank above the rest; within
// each group ordering is by recent growth, then total size, then recency of
// creation. Communities with zero members never qualify.
func (s *analyticsServiceImpl) ComputeTrending(ctx context.Context) ([]dto.TrendingCommunityResponse, error) {
	aggregates, err := s.store.Aggregates(ctx, s.now())
	if err != nil {
		return nil, err
	}

	trending := make([]repositories.CommunityAggregate, 0, len(aggregates))
	for _, agg := range aggregates {
		if agg.NewMembers24h >= hotNewMembers24h || agg.TotalMembers > trendingMinMembers {
			trending = append(trending, agg)
		}
	}

	sort.SliceStable(trending, func(i, j int) bool {
		a, b := trending[i], trending[j]
		aHot := a.NewMembers24h >= hotNewMembers24h
		bHot := b.NewMembers24h >= hotNewMembers24h
		if aHot != bHot {
			return aHot
		}
		if a.NewMembers24h != b.NewMembers24h {
			return a.NewMembers24h > b.NewMembers24h
		}
		if a.TotalMembers != b.TotalMembers {
			return a.TotalMembers > b.TotalMembers
		}
		return a.Community.CreatedAt.After(b.Community.CreatedAt)
	})

	responses := make([]dto.TrendingCommunityResponse, 0, len(trending))
	for _, agg := range trending {
		responses = append(responses, dto.TrendingCommunityResponse{
			CommunityResponse: dto.CommunityResponse{
				ID:          agg.Community.ID,
				Slug:        agg.Community.Slug,
				Name:        agg.Community.Name,
				Description: agg.Community.Description,
				CreatedAt:   agg.Community.CreatedAt,
				UpdatedAt:   agg.Community.UpdatedAt,
				Counts: dto.CommunityCounts{
					Members: agg.TotalMembers,
					Posts:   agg.TotalPosts,
				},
			},
			NewMembers24h: agg.NewMembers24h,
		})
	}
	return responses, nil
}

// ComputeCommunityStats gathers the three totals concurrently, then derives
// the growth rate and attaches the sparse 30-day activity series.
func (s *analyticsServiceImpl) ComputeCommunityStats(ctx context.Context, communityID string) (*dto.CommunityStatsResponse, error) {
	var (
		members, posts, comments          int64
		membersErr, postsErr, commentsErr error
		wg                                sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		members, membersErr = s.store.CountMembers(ctx, communityID)
	}()
	go func() {
		defer wg.Done()
		posts, postsErr = s.store.CountPosts(ctx, communityID)
	}()
	go func() {
		defer wg.Done()
		comments, commentsErr = s.store.CountComments(ctx, communityID)
	}()
	wg.Wait()

	for _, err := range []error{membersErr, postsErr, commentsErr} {
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	activity, err := s.store.DailyActivity(ctx, communityID, now.AddDate(0, 0, -statsActivityDays), now)
	if err != nil {
		return nil, err
	}

	recent := make([]dto.DailyActivity, 0, len(activity))
	for _, day := range activity {
		recent = append(recent, dto.DailyActivity{
			Date:        day.Date,
			NewMembers:  day.NewMembers,
			NewPosts:    day.NewPosts,
			NewComments: day.NewComments,
		})
	}

	return &dto.CommunityStatsResponse{
		TotalMembers:   members,
		TotalPosts:     posts,
		TotalComments:  comments,
		GrowthRate:     growthRate(posts, members),
		RecentActivity: recent,
	}, nil
}

// growthRate is a posts-per-member score scaled by ten, clamped to 100
// before rounding. Zero members yields zero.
func growthRate(posts, members int64) int {
	if members == 0 {
		return 0
	}
	rate := float64(posts) / float64(members) * 10
	return int(math.Round(math.Min(100, rate)))
}
