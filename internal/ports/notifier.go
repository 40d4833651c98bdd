package ports

import "context"

// Notifier entrega un mensaje ya formateado a un canal externo.
// Fire-and-forget: el error solo se loguea, nunca se reintenta.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
