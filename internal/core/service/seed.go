package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
)

// DefaultUsers are the development accounts of the resource server.
var DefaultUsers = []domain.RemoteUser{
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin, FullName: "Administrator"},
	{Username: "user", Password: "user123", Role: domain.RoleUser, FullName: "Regular User"},
}

// SeedUsers creates users when the repository holds no accounts at all. It
// reports how many were created.
func SeedUsers(ctx context.Context, repo ports.UserRepository, users []domain.RemoteUser, log zerolog.Logger) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Debug().Int64("existing", n).Msg("users present, skipping seed")
		return 0, nil
	}

	for i, u := range users {
		if _, err := repo.Create(ctx, u); err != nil {
			return i, fmt.Errorf("seed user %q: %w", u.Username, err)
		}
	}
	log.Info().Int("count", len(users)).Msg("seeded users")
	return len(users), nil
}
