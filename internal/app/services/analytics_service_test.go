package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/app/repositories"
)

type fakeAnalyticsStore struct {
	aggregates []repositories.CommunityAggregate
	members    int64
	posts      int64
	comments   int64
	activity   []repositories.ActivityDay

	activitySince time.Time
	activityUntil time.Time
}

func (f *fakeAnalyticsStore) Aggregates(_ context.Context, _ time.Time) ([]repositories.CommunityAggregate, error) {
	return f.aggregates, nil
}

func (f *fakeAnalyticsStore) CountMembers(_ context.Context, _ string) (int64, error) {
	return f.members, nil
}

func (f *fakeAnalyticsStore) CountPosts(_ context.Context, _ string) (int64, error) {
	return f.posts, nil
}

func (f *fakeAnalyticsStore) CountComments(_ context.Context, _ string) (int64, error) {
	return f.comments, nil
}

func (f *fakeAnalyticsStore) DailyActivity(_ context.Context, _ string, since, until time.Time) ([]repositories.ActivityDay, error) {
	f.activitySince = since
	f.activityUntil = until
	return f.activity, nil
}

func aggregate(id string, total, new24h int64, createdAt time.Time) repositories.CommunityAggregate {
	return repositories.CommunityAggregate{
		Community: models.Community{
			ID:        id,
			Slug:      id,
			Name:      id,
			CreatedAt: createdAt,
		},
		TotalMembers:  total,
		NewMembers24h: new24h,
	}
}

func newAnalyticsService(store AnalyticsStore, at time.Time) *analyticsServiceImpl {
	svc := NewAnalyticsService(store, zerolog.Nop()).(*analyticsServiceImpl)
	svc.now = func() time.Time { return at }
	return svc
}

func TestComputeTrendingThresholds(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeAnalyticsStore{aggregates: []repositories.CommunityAggregate{
		aggregate("hot", 5, 10, base),            // qualifies: >= 10 new members
		aggregate("big", 21, 0, base),            // qualifies: > 20 total
		aggregate("boundary-new", 5, 9, base),    // 9 < 10, 5 <= 20: out
		aggregate("boundary-total", 20, 0, base), // 20 is not > 20: out
		aggregate("empty", 0, 0, base),           // zero members never qualify
	}}
	svc := newAnalyticsService(store, base)

	trending, err := svc.ComputeTrending(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(trending))
	for _, c := range trending {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"hot", "big"}, ids)
}

func TestComputeTrendingOrdering(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := base.AddDate(0, -1, 0)
	store := &fakeAnalyticsStore{aggregates: []repositories.CommunityAggregate{
		aggregate("big-old", 400, 2, older),
		aggregate("hot-small", 25, 12, base), // hot beats any non-hot regardless of size
		aggregate("hot-big", 30, 12, base),   // ties on growth break on total members
		aggregate("big-new", 400, 2, base),   // ties on size break on recency
		aggregate("hotter", 15, 40, base),
	}}
	svc := newAnalyticsService(store, base)

	trending, err := svc.ComputeTrending(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(trending))
	for _, c := range trending {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"hotter", "hot-big", "hot-small", "big-new", "big-old"}, ids)
	assert.Equal(t, int64(40), trending[0].NewMembers24h)
}

func TestComputeTrendingEmpty(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newAnalyticsService(&fakeAnalyticsStore{}, base)

	trending, err := svc.ComputeTrending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, trending)
}

func TestComputeCommunityStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	store := &fakeAnalyticsStore{
		members:  10,
		posts:    5,
		comments: 7,
		activity: []repositories.ActivityDay{
			{Date: day, NewMembers: 2, NewPosts: 1, NewComments: 3},
		},
	}
	svc := newAnalyticsService(store, now)

	stats, err := svc.ComputeCommunityStats(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalMembers)
	assert.Equal(t, int64(5), stats.TotalPosts)
	assert.Equal(t, int64(7), stats.TotalComments)
	assert.Equal(t, 5, stats.GrowthRate) // (5/10)*10 = 5

	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, day, stats.RecentActivity[0].Date)
	assert.Equal(t, int64(2), stats.RecentActivity[0].NewMembers)

	assert.Equal(t, now.AddDate(0, 0, -30), store.activitySince)
	assert.Equal(t, now, store.activityUntil)
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name    string
		posts   int64
		members int64
		want    int
	}{
		{"no members", 5, 0, 0},
		{"no posts", 0, 10, 0},
		{"half post per member", 5, 10, 5},
		{"rounds half up", 1, 4, 3}, // 2.5 rounds to 3
		{"clamped to 100", 500, 10, 100},
		{"clamp before round", 1000000, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, growthRate(tt.posts, tt.members))
		})
	}
}
