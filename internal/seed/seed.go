package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appRepos "github.com/subber-app/subber/internal/app/repositories"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/slug"
)

// starter communities created on first boot
var defaultCommunities = []struct {
	Name        string
	Description string
}{
	{"General", "Open discussion for everyone"},
	{"Introductions", "Say hello and tell us what you are building"},
	{"Showcase", "Share your projects and portfolios"},
}

// CreateDefaultData creates the starter communities if they don't exist.
// Errors are collected rather than aborting so one bad row never blocks
// startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	communityRepo := appRepos.NewCommunityRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default communities...")
	var finalErr error

	for _, c := range defaultCommunities {
		description := c.Description
		_, err := communityRepo.Create(ctx, c.Name, slug.Make(c.Name), &description)
		if err != nil {
			if errors.Is(err, apperrors.ErrSlugTaken) {
				continue
			}
			lgr.Error().Err(err).Str("community", c.Name).Msg("Error creating default community")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
