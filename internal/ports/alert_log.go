package ports

import (
	"context"

	"github.com/alejandrodnm/polywatch/internal/domain"
)

// AlertLog guarda el histórico de notificaciones enviadas.
// No se usa para restaurar watermark ni dedup al reiniciar.
type AlertLog interface {
	// SaveAlert persiste una notificación entregada o fallida.
	SaveAlert(ctx context.Context, alert domain.Alert) error

	// RecentAlerts devuelve las últimas limit alertas, más recientes primero.
	RecentAlerts(ctx context.Context, limit int) ([]domain.Alert, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
