package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

// IdentityStore is the storage surface the identity resolver needs. It is
// satisfied by repositories.UserRepository.
type IdentityStore interface {
	FindByWallet(ctx context.Context, walletAddress string) (*models.User, error)
	Insert(ctx context.Context, walletAddress, displayName string) (*models.User, error)
}

// IdentityService resolves wallet addresses to user accounts, creating the
// account on first contact. Resolution is idempotent: the same address always
// maps to the same user.
type IdentityService interface {
	// ResolveIdentity returns the user for a wallet address, creating one if
	// none exists yet. The second return reports whether a new account was
	// created by this call.
	ResolveIdentity(ctx context.Context, walletAddress string) (*models.User, bool, error)

	// LookupIdentity returns the user for a wallet address without creating
	// one. Returns apperrors.ErrUserNotFound for unknown addresses.
	LookupIdentity(ctx context.Context, walletAddress string) (*models.User, error)
}

type identityServiceImpl struct {
	users  IdentityStore
	logger zerolog.Logger
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(users IdentityStore, logger zerolog.Logger) IdentityService {
	return &identityServiceImpl{users: users, logger: logger}
}

func (s *identityServiceImpl) ResolveIdentity(ctx context.Context, walletAddress string) (*models.User, bool, error) {
	if walletAddress == "" {
		return nil, false, apperrors.ErrMissingCredential
	}

	user, err := s.users.FindByWallet(ctx, walletAddress)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, false, err
	}

	user, err = s.users.Insert(ctx, walletAddress, defaultDisplayName(walletAddress))
	if err == nil {
		s.logger.Info().Str("userId", user.ID).Msg("Created user for new wallet address")
		return user, true, nil
	}

	// A concurrent request inserted the same address first; the unique
	// constraint on wallet_address arbitrates and the winner's row is reused.
	if errors.Is(err, apperrors.ErrConflict) {
		user, err = s.users.FindByWallet(ctx, walletAddress)
		if err != nil {
			return nil, false, err
		}
		return user, false, nil
	}

	return nil, false, err
}

func (s *identityServiceImpl) LookupIdentity(ctx context.Context, walletAddress string) (*models.User, error) {
	if walletAddress == "" {
		return nil, apperrors.ErrMissingCredential
	}
	return s.users.FindByWallet(ctx, walletAddress)
}

// defaultDisplayName derives the initial display name from the wallet
// address: first six characters, an ellipsis, last four. Addresses of ten
// characters or fewer are used verbatim.
func defaultDisplayName(walletAddress string) string {
	if len(walletAddress) <= 10 {
		return walletAddress
	}
	return walletAddress[:6] + "..." + walletAddress[len(walletAddress)-4:]
}
