package watcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/polywatch/internal/domain"
	"github.com/alejandrodnm/polywatch/internal/ports"
)

// ProfileResolver traduce una dirección a un nombre legible.
// Sin caché ni retries: una llamada por evento.
type ProfileResolver struct {
	profiles ports.ProfileProvider
}

// NewProfileResolver crea un resolver sobre el proveedor de perfiles dado.
func NewProfileResolver(profiles ports.ProfileProvider) *ProfileResolver {
	return &ProfileResolver{profiles: profiles}
}

// Resolve devuelve el nombre del trader. Si la llamada tuvo éxito pero el
// perfil no trae nombre, devuelve la dirección abreviada. ok=false significa
// "sin nombre disponible": el caller usa la dirección completa.
func (r *ProfileResolver) Resolve(ctx context.Context, address string) (name string, ok bool) {
	profile, err := r.profiles.FetchProfile(ctx, address)
	if err != nil {
		slog.Warn("profile lookup failed",
			"trader", domain.ShortAddress(address),
			"err", err,
		)
		return "", false
	}
	if profile.Address == "" {
		profile.Address = address
	}
	return profile.DisplayName(), true
}

// Label devuelve "nombre (0x1234...abcd)", o la dirección completa si no hay nombre.
// Un perfil sin nombre ya resuelve a la dirección abreviada y no se repite.
func (r *ProfileResolver) Label(ctx context.Context, address string) string {
	name, ok := r.Resolve(ctx, address)
	if !ok {
		return address
	}
	short := domain.ShortAddress(address)
	if name == short {
		return short
	}
	return fmt.Sprintf("%s (%s)", name, short)
}
