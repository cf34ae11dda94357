package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/repositories"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/helpers"
)

const (
	searchMinLength   = 2
	searchResultLimit = 10
)

// UserService defines the interface for user directory and profile operations
type UserService interface {
	ListUsers(ctx context.Context, search string, page, pageSize int) ([]dto.UserListItem, dto.PaginationInfo, error)
	SearchUsers(ctx context.Context, q string) ([]dto.UserSummary, error)
	GetUser(ctx context.Context, userID string, viewerID string) (*dto.UserDetailResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
	FollowUser(ctx context.Context, followerID, followingID string) error
	UnfollowUser(ctx context.Context, followerID, followingID string) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo   *repositories.UserRepository
	followRepo *repositories.FollowRepository
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	followRepo *repositories.FollowRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		followRepo: followRepo,
		logger:     logger,
	}
}

// ListUsers returns a page of the user directory, optionally filtered by a
// case-insensitive name search.
func (s *userServiceImpl) ListUsers(ctx context.Context, search string, page, pageSize int) ([]dto.UserListItem, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	rows, err := s.userRepo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	total, err := s.userRepo.Count(ctx, search)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	items := make([]dto.UserListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.UserListItem{
			ID:             row.User.ID,
			Name:           row.User.Name,
			Bio:            row.User.Bio,
			ProfilePicture: row.User.ProfilePicture,
			CreatedAt:      row.User.CreatedAt,
			FollowerCount:  row.Followers,
			PostCount:      row.Posts,
		})
	}

	return items, helpers.NewPaginationInfo(total, page, limit), nil
}

// SearchUsers matches users by name or email. Queries shorter than two
// characters return an empty result instead of matching everyone.
func (s *userServiceImpl) SearchUsers(ctx context.Context, q string) ([]dto.UserSummary, error) {
	if len(q) < searchMinLength {
		return []dto.UserSummary{}, nil
	}

	users, err := s.userRepo.Search(ctx, q, searchResultLimit)
	if err != nil {
		return nil, err
	}

	results := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		results = append(results, userSummary(&users[i]))
	}
	return results, nil
}

// GetUser returns a user's public profile. When viewerID is non-empty the
// response reports whether the viewer follows them.
func (s *userServiceImpl) GetUser(ctx context.Context, userID string, viewerID string) (*dto.UserDetailResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.userRepo.GetCounts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	detail := &dto.UserDetailResponse{
		ID:             user.ID,
		Name:           user.Name,
		Bio:            user.Bio,
		Location:       user.Location,
		Website:        user.Website,
		ProfilePicture: user.ProfilePicture,
		BannerImage:    user.BannerImage,
		CreatedAt:      user.CreatedAt,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
		PostCount:      counts.Posts,
	}

	if viewerID != "" && viewerID != user.ID {
		following, err := s.followRepo.Exists(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		detail.IsFollowing = following
	}
	return detail, nil
}

// UpdateProfile applies the supplied fields to the caller's profile. Absent
// fields keep their current value; empty strings clear the field.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := mergeField(current.Name, req.Name)
	bio := mergeField(current.Bio, req.Bio)
	location := mergeField(current.Location, req.Location)
	website := mergeField(current.Website, req.Website)
	picture := mergeField(current.ProfilePicture, req.ProfilePicture)
	banner := mergeField(current.BannerImage, req.BannerImage)

	return s.userRepo.UpdateProfile(ctx, userID, name, bio, location, website, picture, banner)
}

// FollowUser records follower -> following. Following yourself is rejected;
// following someone twice surfaces the unique-constraint conflict.
func (s *userServiceImpl) FollowUser(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return apperrors.ErrSelfFollow
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return err
	}
	return s.followRepo.Create(ctx, followerID, followingID)
}

// UnfollowUser removes the relationship; unfollowing a non-followed user is a
// no-op.
func (s *userServiceImpl) UnfollowUser(ctx context.Context, followerID, followingID string) error {
	return s.followRepo.Delete(ctx, followerID, followingID)
}

// mergeField keeps the current value when the request omits the field and
// clears it when the request carries an empty string.
func mergeField(current, requested *string) *string {
	if requested == nil {
		return current
	}
	return helpers.NullIfEmptyPtr(requested)
}
