package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/repositories"
	"github.com/subber-app/subber/internal/db"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

// fakeTxRunner executes the transaction body directly and records whether it
// ended in a rollback.
type fakeTxRunner struct {
	rolledBack bool
}

func (r *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if err := fn(ctx, nil); err != nil {
		r.rolledBack = true
		return err
	}
	return nil
}

type fakeCommunityStore struct {
	bySlug map[string]*models.Community
}

func newFakeCommunityStore() *fakeCommunityStore {
	return &fakeCommunityStore{bySlug: map[string]*models.Community{}}
}

func (s *fakeCommunityStore) List(ctx context.Context) ([]repositories.CommunityWithCounts, error) {
	return nil, nil
}

func (s *fakeCommunityStore) GetBySlug(ctx context.Context, slug string) (*models.Community, error) {
	if c, ok := s.bySlug[slug]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCommunityNotFound
}

func (s *fakeCommunityStore) Counts(ctx context.Context, communityID string) (int64, int64, error) {
	return 0, 0, nil
}

func (s *fakeCommunityStore) CreateTx(ctx context.Context, tx pgx.Tx, name, slug string, description *string) (*models.Community, error) {
	if _, exists := s.bySlug[slug]; exists {
		return nil, apperrors.ErrSlugTaken
	}
	c := &models.Community{ID: "c-" + slug, Slug: slug, Name: name, Description: description, CreatedAt: time.Now()}
	s.bySlug[slug] = c
	return c, nil
}

func (s *fakeCommunityStore) UpdateRules(ctx context.Context, communityID string, rules, guidelines *string) error {
	return nil
}

type fakeMemberStore struct {
	members map[string]models.MemberRole
	addErr  error
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{members: map[string]models.MemberRole{}}
}

func (s *fakeMemberStore) Add(ctx context.Context, communityID, userID string, role models.MemberRole) error {
	key := communityID + "/" + userID
	if _, exists := s.members[key]; exists {
		return apperrors.ErrAlreadyMember
	}
	s.members[key] = role
	return nil
}

func (s *fakeMemberStore) AddTx(ctx context.Context, tx pgx.Tx, communityID, userID string, role models.MemberRole) error {
	if s.addErr != nil {
		return s.addErr
	}
	return s.Add(ctx, communityID, userID, role)
}

func (s *fakeMemberStore) Remove(ctx context.Context, communityID, userID string) error {
	delete(s.members, communityID+"/"+userID)
	return nil
}

func (s *fakeMemberStore) GetRole(ctx context.Context, communityID, userID string) (models.MemberRole, error) {
	role, ok := s.members[communityID+"/"+userID]
	if !ok {
		return "", apperrors.ErrNotMember
	}
	return role, nil
}

func (s *fakeMemberStore) List(ctx context.Context, communityID string, limit int) ([]models.CommunityMember, error) {
	return nil, nil
}

func newCommunityService(communities *fakeCommunityStore, members *fakeMemberStore) (CommunityService, *fakeTxRunner) {
	runner := &fakeTxRunner{}
	return NewCommunityService(runner, communities, members, zerolog.Nop()), runner
}

func TestCreateCommunityRejectsUnsluggableName(t *testing.T) {
	svc := NewCommunityService(nil, nil, nil, zerolog.Nop())

	_, err := svc.CreateCommunity(context.Background(), "u1", &dto.CreateCommunityRequest{Name: "!!!"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateCommunityMakesCreatorAdmin(t *testing.T) {
	communities := newFakeCommunityStore()
	members := newFakeMemberStore()
	svc, _ := newCommunityService(communities, members)

	detail, err := svc.CreateCommunity(context.Background(), "u1", &dto.CreateCommunityRequest{Name: "My Cool Club!!"})
	require.NoError(t, err)

	assert.Equal(t, "my-cool-club", detail.Slug)
	assert.True(t, detail.IsMember)
	require.NotNil(t, detail.MemberRole)
	assert.Equal(t, string(models.RoleAdmin), *detail.MemberRole)

	role, err := members.GetRole(context.Background(), detail.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestCreateCommunityCollidingSlugConflict(t *testing.T) {
	communities := newFakeCommunityStore()
	svc, _ := newCommunityService(communities, newFakeMemberStore())

	_, err := svc.CreateCommunity(context.Background(), "u1", &dto.CreateCommunityRequest{Name: "My Cool Club!!"})
	require.NoError(t, err)

	// Different punctuation, same derived slug.
	_, err = svc.CreateCommunity(context.Background(), "u2", &dto.CreateCommunityRequest{Name: "my cool CLUB"})
	assert.ErrorIs(t, err, apperrors.ErrSlugTaken)
	assert.Len(t, communities.bySlug, 1)
}

func TestCreateCommunityRollsBackOnMembershipFailure(t *testing.T) {
	members := newFakeMemberStore()
	members.addErr = assert.AnError
	svc, runner := newCommunityService(newFakeCommunityStore(), members)

	_, err := svc.CreateCommunity(context.Background(), "u1", &dto.CreateCommunityRequest{Name: "Doomed Club"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, runner.rolledBack)
	assert.Empty(t, members.members)
}

func TestJoinCommunityTwiceConflict(t *testing.T) {
	communities := newFakeCommunityStore()
	members := newFakeMemberStore()
	svc, _ := newCommunityService(communities, members)

	_, err := svc.CreateCommunity(context.Background(), "u1", &dto.CreateCommunityRequest{Name: "Gardeners"})
	require.NoError(t, err)

	require.NoError(t, svc.JoinCommunity(context.Background(), "gardeners", "u2"))
	assert.Len(t, members.members, 2)

	err = svc.JoinCommunity(context.Background(), "gardeners", "u2")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
	assert.Len(t, members.members, 2)
}
