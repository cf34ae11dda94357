package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

// fakeIdentityStore is an in-memory IdentityStore. Setting conflictOnInsert
// simulates losing the insert race to a concurrent request: Insert fails
// with ErrConflict after the "winner" row appears in the store.
type fakeIdentityStore struct {
	users            map[string]*models.User
	conflictOnInsert bool
	inserts          int
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{users: map[string]*models.User{}}
}

func (f *fakeIdentityStore) FindByWallet(_ context.Context, walletAddress string) (*models.User, error) {
	user, ok := f.users[walletAddress]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeIdentityStore) Insert(_ context.Context, walletAddress, displayName string) (*models.User, error) {
	f.inserts++
	if f.conflictOnInsert {
		winner := &models.User{ID: "winner", WalletAddress: &walletAddress}
		f.users[walletAddress] = winner
		return nil, apperrors.ErrConflict
	}
	if _, exists := f.users[walletAddress]; exists {
		return nil, apperrors.ErrConflict
	}
	user := &models.User{ID: "u-" + walletAddress, WalletAddress: &walletAddress, Name: &displayName}
	f.users[walletAddress] = user
	return user, nil
}

func TestResolveIdentityCreatesOnFirstContact(t *testing.T) {
	store := newFakeIdentityStore()
	svc := NewIdentityService(store, zerolog.Nop())

	user, created, err := svc.ResolveIdentity(context.Background(), "0xAbCdEf1234567890aBcD")
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, user)
	require.NotNil(t, user.Name)
	assert.Equal(t, "0xAbCd...aBcD", *user.Name)
}

func TestResolveIdentityIsIdempotent(t *testing.T) {
	store := newFakeIdentityStore()
	svc := NewIdentityService(store, zerolog.Nop())

	first, created, err := svc.ResolveIdentity(context.Background(), "0xSameWalletAddress42")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.ResolveIdentity(context.Background(), "0xSameWalletAddress42")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.inserts)
}

func TestResolveIdentityMissingCredential(t *testing.T) {
	svc := NewIdentityService(newFakeIdentityStore(), zerolog.Nop())

	_, _, err := svc.ResolveIdentity(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrMissingCredential)
}

func TestResolveIdentityInsertRaceFallsBackToLookup(t *testing.T) {
	store := newFakeIdentityStore()
	store.conflictOnInsert = true
	svc := NewIdentityService(store, zerolog.Nop())

	user, created, err := svc.ResolveIdentity(context.Background(), "0xContestedAddress999")
	require.NoError(t, err)
	assert.False(t, created, "losing the race must not report creation")
	assert.Equal(t, "winner", user.ID)
}

func TestLookupIdentityDoesNotCreate(t *testing.T) {
	store := newFakeIdentityStore()
	svc := NewIdentityService(store, zerolog.Nop())

	_, err := svc.LookupIdentity(context.Background(), "0xUnknownWallet")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Equal(t, 0, store.inserts)
}

func TestDefaultDisplayName(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{"long address truncated", "0x1234567890abcdef1234", "0x1234...1234"},
		{"short address verbatim", "0xshort", "0xshort"},
		{"exactly ten verbatim", "0123456789", "0123456789"},
		{"eleven truncated", "01234567890", "012345...7890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultDisplayName(tt.addr))
		})
	}
}
