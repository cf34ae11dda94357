package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the statement surface shared by *pgxpool.Pool and pgx.Tx. Repo
// methods that must participate in a caller-owned transaction execute through
// it instead of the pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all repository instances sharing one pool
type Repositories struct {
	UserRepository         *UserRepository
	FollowRepository       *FollowRepository
	CommunityRepository    *CommunityRepository
	MemberRepository       *MemberRepository
	PostRepository         *PostRepository
	CommentRepository      *CommentRepository
	ConversationRepository *ConversationRepository
	PortfolioRepository    *PortfolioRepository
	AnalyticsRepository    *AnalyticsRepository
}

// NewRepositories creates all repositories over a shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		FollowRepository:       NewFollowRepository(db),
		CommunityRepository:    NewCommunityRepository(db),
		MemberRepository:       NewMemberRepository(db),
		PostRepository:         NewPostRepository(db),
		CommentRepository:      NewCommentRepository(db),
		ConversationRepository: NewConversationRepository(db),
		PortfolioRepository:    NewPortfolioRepository(db),
		AnalyticsRepository:    NewAnalyticsRepository(db),
	}
}
