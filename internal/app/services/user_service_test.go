package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subber-app/subber/internal/pkg/apperrors"
)

func TestSearchUsersShortQuery(t *testing.T) {
	svc := NewUserService(nil, nil, zerolog.Nop())

	for _, q := range []string{"", "a"} {
		results, err := svc.SearchUsers(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestFollowUserRejectsSelf(t *testing.T) {
	svc := NewUserService(nil, nil, zerolog.Nop())

	err := svc.FollowUser(context.Background(), "u1", "u1")
	assert.ErrorIs(t, err, apperrors.ErrSelfFollow)
}
