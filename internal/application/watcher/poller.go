package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/alejandrodnm/polywatch/internal/domain"
	"github.com/alejandrodnm/polywatch/internal/ports"
	"github.com/google/uuid"
)

// PollerConfig contiene los parámetros de un poller.
type PollerConfig struct {
	Interval time.Duration // base entre ciclos, se le suma jitter de hasta Interval/2
	Lookback time.Duration // el watermark arranca en now - Lookback
	PageSize int           // entradas pedidas por ciclo
	MinUSDC  float64       // trades por debajo se ignoran (ruido)
	MaxSeen  int           // > 0 activa el prune del set de hashes al superar este tamaño
}

// DefaultPollerConfig devuelve la configuración por defecto.
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Interval: time.Second,
		Lookback: time.Hour,
		PageSize: 20,
		MinUSDC:  5,
	}
}

// Poller vigila el feed de actividad de un único trader.
// No es seguro para uso concurrente: cada trader tiene el suyo y solo
// su goroutine lo toca.
type Poller struct {
	cfg      PollerConfig
	trader   string
	activity ports.ActivityProvider
	resolver *ProfileResolver
	notifier ports.Notifier
	alerts   ports.AlertLog // nil = sin histórico

	watermark int64 // unix segundos, nunca decrece
	seen      *seenSet
}

// NewPoller crea un poller para el trader con el watermark en now - Lookback.
func NewPoller(
	trader string,
	cfg PollerConfig,
	activity ports.ActivityProvider,
	resolver *ProfileResolver,
	notifier ports.Notifier,
	alerts ports.AlertLog,
) *Poller {
	return newPoller(trader, cfg, activity, resolver, notifier, alerts, time.Now())
}

func newPoller(
	trader string,
	cfg PollerConfig,
	activity ports.ActivityProvider,
	resolver *ProfileResolver,
	notifier ports.Notifier,
	alerts ports.AlertLog,
	start time.Time,
) *Poller {
	return &Poller{
		cfg:       cfg,
		trader:    trader,
		activity:  activity,
		resolver:  resolver,
		notifier:  notifier,
		alerts:    alerts,
		watermark: start.Add(-cfg.Lookback).Unix(),
		seen:      newSeenSet(),
	}
}

// Trader devuelve la dirección vigilada.
func (p *Poller) Trader() string {
	return p.trader
}

// Watermark devuelve el timestamp por debajo del cual los eventos se ignoran.
func (p *Poller) Watermark() int64 {
	return p.watermark
}

// Run ejecuta el loop de polling hasta que el contexto se cancele.
// Los errores de un ciclo se loguean y el loop sigue.
func (p *Poller) Run(ctx context.Context) error {
	slog.Info("poller starting",
		"trader", p.trader,
		"interval", p.cfg.Interval,
		"watermark", time.Unix(p.watermark, 0).UTC().Format(time.RFC3339),
	)

	for {
		p.iterate(ctx)

		select {
		case <-ctx.Done():
			slog.Info("poller stopped", "trader", p.trader)
			return ctx.Err()
		case <-time.After(p.nextDelay()):
		}
	}
}

// iterate ejecuta un ciclo y absorbe cualquier error o panic.
func (p *Poller) iterate(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("poll cycle panicked", "trader", p.trader, "panic", r)
		}
	}()

	if _, err := p.PollOnce(ctx); err != nil && ctx.Err() == nil {
		slog.Warn("poll cycle failed", "trader", p.trader, "err", err)
	}
}

// nextDelay devuelve Interval más un jitter uniforme en [0, Interval/2).
// El jitter solo desincroniza los pollers entre sí; no es backoff.
func (p *Poller) nextDelay() time.Duration {
	jitter := time.Duration(rand.Float64() * 0.5 * float64(p.cfg.Interval))
	return p.cfg.Interval + jitter
}

// PollOnce pide la actividad reciente una vez y notifica los trades nuevos.
// Devuelve cuántas notificaciones se intentaron.
func (p *Poller) PollOnce(ctx context.Context) (int, error) {
	events, err := p.activity.FetchActivity(ctx, p.trader, p.cfg.PageSize)
	if err != nil {
		return 0, fmt.Errorf("watcher.PollOnce: %w", err)
	}

	notified := 0
	for _, e := range events {
		amount, ok := p.qualifies(e)
		if !ok {
			continue
		}

		p.notify(ctx, e, amount)

		p.seen.Add(e.TransactionHash, e.Timestamp)
		if e.Timestamp > p.watermark {
			p.watermark = e.Timestamp
		}
		notified++
	}

	if p.cfg.MaxSeen > 0 && p.seen.Len() > p.cfg.MaxSeen {
		removed := p.seen.PruneBelow(p.watermark)
		slog.Debug("pruned seen hashes", "trader", p.trader, "removed", removed, "kept", p.seen.Len())
	}

	return notified, nil
}

// qualifies aplica los filtros en orden: visto, stale, tipo, importe mínimo.
// Devuelve el notional en USDC si el evento debe notificarse.
func (p *Poller) qualifies(e domain.ActivityEvent) (float64, bool) {
	if p.seen.Has(e.TransactionHash) {
		return 0, false
	}
	if !e.HasTimestamp || e.Timestamp < p.watermark {
		return 0, false
	}
	if !e.IsTrade() {
		return 0, false
	}

	amount, rule := e.Notional()
	if amount < p.cfg.MinUSDC {
		slog.Debug("trade below minimum",
			"trader", p.trader,
			"tx", e.TransactionHash,
			"usdc", fmt.Sprintf("%.2f", amount),
			"rule", rule,
		)
		return 0, false
	}
	return amount, true
}

// notify construye y entrega la notificación. Fire-and-forget: un fallo de
// entrega se loguea y se registra, pero el evento queda marcado como visto.
func (p *Poller) notify(ctx context.Context, e domain.ActivityEvent, amount float64) {
	link, kind := e.MarketLink()

	slog.Debug("trade detected",
		"trader", p.trader,
		"tx", e.TransactionHash[:min(10, len(e.TransactionHash))],
		"slug", e.Slug,
		"condition_id", e.ConditionID[:min(10, len(e.ConditionID))],
		"question", e.Title[:min(50, len(e.Title))],
		"usdc", fmt.Sprintf("%.2f", amount),
		"size", fmt.Sprintf("%.0f", e.Size),
		"price", e.Price,
		"side", e.Side,
		"outcome", e.Outcome,
		"ts", e.Timestamp,
		"link", kind,
	)

	n := domain.Notification{
		TraderLabel: p.resolver.Label(ctx, p.trader),
		AmountUSDC:  amount,
		Shares:      e.Size,
		Side:        e.Side,
		Price:       e.Price,
		MarketLabel: e.MarketLabel(),
		MarketURL:   link,
	}

	alert := domain.Alert{
		ID:         uuid.New().String(),
		Trader:     p.trader,
		TxHash:     e.TransactionHash,
		AmountUSDC: amount,
		Side:       e.Side,
		Price:      e.Price,
		Market:     n.MarketLabel,
		MarketURL:  link,
		Delivered:  true,
		EventTime:  time.Unix(e.Timestamp, 0),
		CreatedAt:  time.Now(),
	}

	if err := p.notifier.Notify(ctx, FormatNotification(n)); err != nil {
		alert.Delivered = false
		alert.Error = err.Error()
		slog.Warn("notification failed",
			"trader", p.trader,
			"tx", e.TransactionHash,
			"err", err,
		)
	} else {
		slog.Info("trade notified",
			"trader", n.TraderLabel,
			"usdc", fmt.Sprintf("%.2f", amount),
			"side", e.Side,
			"market", n.MarketLabel,
			"link", link,
		)
	}

	if p.alerts != nil {
		if err := p.alerts.SaveAlert(ctx, alert); err != nil {
			slog.Warn("alert log error", "err", err)
		}
	}
}
