package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/repositories"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/helpers"
)

// PostService defines the interface for post and comment operations
type PostService interface {
	CreatePost(ctx context.Context, communitySlug, authorID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, communitySlug string) ([]dto.PostResponse, error)
	GetPost(ctx context.Context, postID string) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, postID, userID string) error
	CreateComment(ctx context.Context, postID, authorID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, postID string) ([]dto.CommentResponse, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo      *repositories.PostRepository
	commentRepo   *repositories.CommentRepository
	communityRepo *repositories.CommunityRepository
	memberRepo    *repositories.MemberRepository
	userRepo      *repositories.UserRepository
	logger        zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo *repositories.PostRepository,
	commentRepo *repositories.CommentRepository,
	communityRepo *repositories.CommunityRepository,
	memberRepo *repositories.MemberRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		communityRepo: communityRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

// CreatePost creates a post in a community. Only members may post.
func (s *postServiceImpl) CreatePost(ctx context.Context, communitySlug, authorID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	community, err := s.communityRepo.GetBySlug(ctx, communitySlug)
	if err != nil {
		return nil, err
	}

	isMember, err := s.memberRepo.IsMember(ctx, community.ID, authorID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotMember
	}

	post, err := s.postRepo.Create(ctx, community.ID, authorID, req.Title, req.Content, helpers.NullIfEmptyPtr(req.Image))
	if err != nil {
		return nil, err
	}

	// Re-read through the join query so the author is embedded the same way
	// list responses embed it.
	return s.GetPost(ctx, post.ID)
}

// ListPosts returns a community's posts, newest first
func (s *postServiceImpl) ListPosts(ctx context.Context, communitySlug string) ([]dto.PostResponse, error) {
	community, err := s.communityRepo.GetBySlug(ctx, communitySlug)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByCommunity(ctx, community.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, postResponse(&posts[i]))
	}
	return responses, nil
}

// GetPost returns one post with its author and comment count
func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	resp := postResponse(post)
	return &resp, nil
}

// DeletePost removes a post. Only its author may delete it.
func (s *postServiceImpl) DeletePost(ctx context.Context, postID, userID string) error {
	authorID, err := s.postRepo.AuthorID(ctx, postID)
	if err != nil {
		return err
	}
	if authorID != userID {
		return apperrors.NewForbiddenError("only the author can delete a post")
	}
	return s.postRepo.Delete(ctx, postID)
}

// CreateComment adds a comment to an existing post
func (s *postServiceImpl) CreateComment(ctx context.Context, postID, authorID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	// Confirm the post exists so a dangling id reads as not-found rather than
	// a foreign key violation.
	if _, err := s.postRepo.AuthorID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Create(ctx, postID, authorID, req.Content)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	return &dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author:    userSummary(author),
	}, nil
}

// ListComments returns a post's comments, oldest first
func (s *postServiceImpl) ListComments(ctx context.Context, postID string) ([]dto.CommentResponse, error) {
	if _, err := s.postRepo.AuthorID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		responses = append(responses, dto.CommentResponse{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			Author:    userSummary(c.Author),
		})
	}
	return responses, nil
}

func postResponse(p *repositories.PostWithMeta) dto.PostResponse {
	return dto.PostResponse{
		ID:           p.Post.ID,
		Title:        p.Post.Title,
		Content:      p.Post.Content,
		Image:        p.Post.Image,
		CreatedAt:    p.Post.CreatedAt,
		UpdatedAt:    p.Post.UpdatedAt,
		Author:       userSummary(&p.Author),
		CommunityID:  p.Post.CommunityID,
		CommentCount: p.CommentCount,
	}
}
