package ports

import (
	"context"

	"github.com/alejandrodnm/polywatch/internal/domain"
)

// ProfileProvider obtiene el perfil público de una dirección.
type ProfileProvider interface {
	FetchProfile(ctx context.Context, address string) (domain.Profile, error)
}
