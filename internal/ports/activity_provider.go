package ports

import (
	"context"

	"github.com/alejandrodnm/polywatch/internal/domain"
)

// ActivityProvider lee el feed de actividad de un trader.
type ActivityProvider interface {
	// FetchActivity devuelve las últimas limit entradas del trader,
	// ordenadas por timestamp descendente.
	FetchActivity(ctx context.Context, trader string, limit int) ([]domain.ActivityEvent, error)
}
