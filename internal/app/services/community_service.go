package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/repositories"
	"github.com/subber-app/subber/internal/db"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/helpers"
	"github.com/subber-app/subber/internal/pkg/slug"
)

// activityFeedLimit caps the community activity feed length
const activityFeedLimit = 50

// TxRunner runs a function inside a database transaction. It is satisfied by
// db.PostgresDB.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// CommunityStore is the community data access the service depends on. It is
// satisfied by repositories.CommunityRepository.
type CommunityStore interface {
	List(ctx context.Context) ([]repositories.CommunityWithCounts, error)
	GetBySlug(ctx context.Context, slug string) (*models.Community, error)
	Counts(ctx context.Context, communityID string) (members, posts int64, err error)
	CreateTx(ctx context.Context, tx pgx.Tx, name, slug string, description *string) (*models.Community, error)
	UpdateRules(ctx context.Context, communityID string, rules, guidelines *string) error
}

// MemberStore is the membership data access the service depends on. It is
// satisfied by repositories.MemberRepository.
type MemberStore interface {
	Add(ctx context.Context, communityID, userID string, role models.MemberRole) error
	AddTx(ctx context.Context, tx pgx.Tx, communityID, userID string, role models.MemberRole) error
	Remove(ctx context.Context, communityID, userID string) error
	GetRole(ctx context.Context, communityID, userID string) (models.MemberRole, error)
	List(ctx context.Context, communityID string, limit int) ([]models.CommunityMember, error)
}

// CommunityService defines the interface for community operations
type CommunityService interface {
	ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error)
	GetCommunity(ctx context.Context, slug string, viewerID string) (*dto.CommunityDetailResponse, error)
	CreateCommunity(ctx context.Context, creatorID string, req *dto.CreateCommunityRequest) (*dto.CommunityDetailResponse, error)
	UpdateRules(ctx context.Context, slug, userID string, req *dto.UpdateRulesRequest) error
	JoinCommunity(ctx context.Context, slug, userID string) error
	LeaveCommunity(ctx context.Context, slug, userID string) error
	GetMembers(ctx context.Context, slug string) ([]dto.MemberResponse, error)
	GetActivity(ctx context.Context, slug string) ([]dto.ActivityEventResponse, error)
}

// communityServiceImpl implements CommunityService
type communityServiceImpl struct {
	txRunner      TxRunner
	communityRepo CommunityStore
	memberRepo    MemberStore
	logger        zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(
	txRunner TxRunner,
	communityRepo CommunityStore,
	memberRepo MemberStore,
	logger zerolog.Logger,
) CommunityService {
	return &communityServiceImpl{
		txRunner:      txRunner,
		communityRepo: communityRepo,
		memberRepo:    memberRepo,
		logger:        logger,
	}
}

// ListCommunities returns all communities with their counters
func (s *communityServiceImpl) ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error) {
	rows, err := s.communityRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommunityResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, communityResponse(&row.Community, row.Members, row.Posts))
	}
	return responses, nil
}

// GetCommunity returns one community by slug. When viewerID is non-empty the
// response also reports the viewer's membership.
func (s *communityServiceImpl) GetCommunity(ctx context.Context, communitySlug string, viewerID string) (*dto.CommunityDetailResponse, error) {
	community, counts, err := s.getWithCounts(ctx, communitySlug)
	if err != nil {
		return nil, err
	}

	detail := &dto.CommunityDetailResponse{
		CommunityResponse: communityResponse(community, counts.Members, counts.Posts),
		Rules:             community.Rules,
		Guidelines:        community.Guidelines,
	}

	if viewerID != "" {
		role, err := s.memberRepo.GetRole(ctx, community.ID, viewerID)
		if err == nil {
			roleStr := string(role)
			detail.IsMember = true
			detail.MemberRole = &roleStr
		} else if !errors.Is(err, apperrors.ErrNotMember) {
			return nil, err
		}
	}
	return detail, nil
}

// CreateCommunity creates a community and makes the creator its admin. The
// slug is derived from the name; a name that reduces to an empty slug is
// rejected, and a slug collision surfaces as a conflict. The community insert
// and the admin membership commit or roll back together, so a failed
// membership insert never leaves an admin-less community behind.
func (s *communityServiceImpl) CreateCommunity(ctx context.Context, creatorID string, req *dto.CreateCommunityRequest) (*dto.CommunityDetailResponse, error) {
	communitySlug := slug.Make(req.Name)
	if communitySlug == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "community name must contain letters or digits")
	}

	var community *models.Community
	err := s.txRunner.WithTransaction(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		created, err := s.communityRepo.CreateTx(txCtx, tx, req.Name, communitySlug, helpers.NullIfEmptyPtr(req.Description))
		if err != nil {
			return err
		}
		community = created
		return s.memberRepo.AddTx(txCtx, tx, created.ID, creatorID, models.RoleAdmin)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("communityId", community.ID).
		Str("slug", community.Slug).
		Msg("Community created")

	roleStr := string(models.RoleAdmin)
	return &dto.CommunityDetailResponse{
		CommunityResponse: communityResponse(community, 1, 0),
		Rules:             community.Rules,
		Guidelines:        community.Guidelines,
		IsMember:          true,
		MemberRole:        &roleStr,
	}, nil
}

// UpdateRules replaces a community's rules and guidelines. Only admins and
// moderators may edit them.
func (s *communityServiceImpl) UpdateRules(ctx context.Context, communitySlug, userID string, req *dto.UpdateRulesRequest) error {
	community, err := s.communityRepo.GetBySlug(ctx, communitySlug)
	if err != nil {
		return err
	}

	role, err := s.memberRepo.GetRole(ctx, community.ID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotMember) {
			return apperrors.NewForbiddenError("only community members can edit rules")
		}
		return err
	}
	if role != models.RoleAdmin && role != models.RoleModerator {
		return apperrors.NewForbiddenError("only admins and moderators can edit rules")
	}

	return s.communityRepo.UpdateRules(ctx, community.ID,
		helpers.NullIfEmpty(req.Rules), helpers.NullIfEmpty(req.Guidelines))
}

// JoinCommunity adds the user as a regular member
func (s *communityServiceImpl) JoinCommunity(ctx context.Context, communitySlug, userID string) error {
	community, err := s.communityRepo.GetBySlug(ctx, communitySlug)
	if err != nil {
		return err
	}
	return s.memberRepo.Add(ctx, community.ID, userID, models.RoleMember)
}

// LeaveCommunity removes the user's membership
func (s *communityServiceImpl) LeaveCommunity(ctx context.Context, communitySlug, userID string) error {
	community, err := s.communityRepo.GetBySlug(ctx, communitySlug)
	if err != nil {
		return err
	}
	return s.memberRepo.Remove(ctx, community.ID, userID)
}

// GetMembers returns every member of the community, newest first
func (s *communityServiceImpl) GetMembers(ctx context.Context, communitySlug string) ([]dto.MemberResponse, error) {
	community, err := s.communityRepo.GetBySlug(ctx, communitySlug)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.List(ctx, community.ID, 0)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, dto.MemberResponse{
			User:     userSummary(m.User),
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return responses, nil
}

// GetActivity returns the community's recent activity feed: the last 50
// joins, newest first.
func (s *communityServiceImpl) GetActivity(ctx context.Context, communitySlug string) ([]dto.ActivityEventResponse, error) {
	community, err := s.communityRepo.GetBySlug(ctx, communitySlug)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.List(ctx, community.ID, activityFeedLimit)
	if err != nil {
		return nil, err
	}

	events := make([]dto.ActivityEventResponse, 0, len(members))
	for _, m := range members {
		events = append(events, dto.ActivityEventResponse{
			Type:      "member_joined",
			User:      userSummary(m.User),
			CreatedAt: m.JoinedAt,
		})
	}
	return events, nil
}

func (s *communityServiceImpl) getWithCounts(ctx context.Context, communitySlug string) (*models.Community, *dto.CommunityCounts, error) {
	community, err := s.communityRepo.GetBySlug(ctx, communitySlug)
	if err != nil {
		return nil, nil, err
	}
	members, posts, err := s.communityRepo.Counts(ctx, community.ID)
	if err != nil {
		return nil, nil, err
	}
	return community, &dto.CommunityCounts{Members: members, Posts: posts}, nil
}

func communityResponse(c *models.Community, members, posts int64) dto.CommunityResponse {
	return dto.CommunityResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Counts:      dto.CommunityCounts{Members: members, Posts: posts},
	}
}
