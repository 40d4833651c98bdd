package domain

import "time"

// Alert es el registro de una notificación enviada (o fallida) al sink.
// Solo se usa como histórico: el poller nunca lo lee para reconstruir estado.
type Alert struct {
	ID         string
	Trader     string
	TxHash     string
	AmountUSDC float64
	Side       string
	Price      float64
	Market     string
	MarketURL  string
	Delivered  bool
	Error      string // vacío si Delivered
	EventTime  time.Time
	CreatedAt  time.Time
}
