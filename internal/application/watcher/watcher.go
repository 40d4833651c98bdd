package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/polywatch/internal/ports"
	"golang.org/x/sync/errgroup"
)

const defaultRestartDelay = 5 * time.Second

// Config contiene la configuración del watcher.
type Config struct {
	Traders        []string
	Poller         PollerConfig
	StartupMessage string        // vacío = DefaultStartupMessage
	RestartDelay   time.Duration // espera antes de relanzar un poller caído
}

// Watcher es el orquestador: un poller independiente por trader.
type Watcher struct {
	cfg      Config
	resolver *ProfileResolver
	notifier ports.Notifier
	pollers  []*Poller
}

// New crea un Watcher con todas las dependencias inyectadas.
// alerts puede ser nil (dry-run).
func New(
	cfg Config,
	activity ports.ActivityProvider,
	profiles ports.ProfileProvider,
	notifier ports.Notifier,
	alerts ports.AlertLog,
) *Watcher {
	if cfg.RestartDelay <= 0 {
		cfg.RestartDelay = defaultRestartDelay
	}
	if cfg.StartupMessage == "" {
		cfg.StartupMessage = DefaultStartupMessage
	}

	resolver := NewProfileResolver(profiles)
	pollers := make([]*Poller, 0, len(cfg.Traders))
	for _, t := range cfg.Traders {
		pollers = append(pollers, NewPoller(t, cfg.Poller, activity, resolver, notifier, alerts))
	}

	return &Watcher{
		cfg:      cfg,
		resolver: resolver,
		notifier: notifier,
		pollers:  pollers,
	}
}

// Run anuncia el arranque y ejecuta todos los pollers hasta que el contexto
// se cancele. Un poller que termina inesperadamente se relanza.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.pollers) == 0 {
		return errors.New("watcher.Run: no traders configured")
	}

	w.announce(ctx)

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range w.pollers {
		g.Go(func() error {
			w.supervise(ctx, p)
			return nil
		})
	}
	return g.Wait()
}

// RunOnce anuncia el arranque y ejecuta un único ciclo de cada poller en paralelo.
func (w *Watcher) RunOnce(ctx context.Context) error {
	if len(w.pollers) == 0 {
		return errors.New("watcher.RunOnce: no traders configured")
	}

	w.announce(ctx)

	errs := make([]error, len(w.pollers))
	var g errgroup.Group
	for i, p := range w.pollers {
		g.Go(func() error {
			n, err := p.PollOnce(ctx)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", p.Trader(), err)
				return nil
			}
			slog.Info("poll complete", "trader", p.Trader(), "notified", n)
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}

// announce resuelve y loguea el nombre de cada trader y envía el mensaje de
// arranque. Nada aquí es fatal.
func (w *Watcher) announce(ctx context.Context) {
	for _, p := range w.pollers {
		name, ok := w.resolver.Resolve(ctx, p.Trader())
		if !ok {
			name = "anonymous"
		}
		slog.Info("watching trader", "name", name, "address", p.Trader())
	}

	if err := w.notifier.Notify(ctx, w.cfg.StartupMessage); err != nil {
		slog.Warn("startup notification failed", "err", err)
	}
}

// supervise mantiene vivo el poller: si Run vuelve (o hace panic) antes de
// que el contexto se cancele, espera RestartDelay y lo relanza con su
// estado intacto.
func (w *Watcher) supervise(ctx context.Context, p *Poller) {
	for {
		err := runGuarded(ctx, p)
		if ctx.Err() != nil {
			return
		}

		slog.Error("poller exited unexpectedly, restarting",
			"trader", p.Trader(),
			"err", err,
			"delay", w.cfg.RestartDelay,
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.cfg.RestartDelay):
		}
	}
}

// runGuarded ejecuta p.Run convirtiendo un panic en error.
func runGuarded(ctx context.Context, p *Poller) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.Run(ctx)
}
