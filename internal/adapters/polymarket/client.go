package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultDataBase  = "https://data-api.polymarket.com"
	defaultGammaBase = "https://gamma-api.polymarket.com"

	// Rate limits al 60% de los límites reales documentados.
	// Data API /activity: 200/10s → 120/10s → 12/s
	dataRatePerSec = 12
	// Gamma general: 300/10s → 180/10s → 18/s
	gammaRatePerSec = 18

	activityTimeout = 15 * time.Second
	profileTimeout  = 12 * time.Second

	maxErrorBody = 512
)

// StatusError es la respuesta no-200 de la API. El caller decide cómo tratarla;
// aquí no hay retries.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Client es el HTTP client de Polymarket con rate limiting.
// Es seguro para uso concurrente: todos los pollers comparten uno.
type Client struct {
	http         *http.Client
	dataBase     string
	gammaBase    string
	dataLimiter  *rate.Limiter
	gammaLimiter *rate.Limiter
}

// NewClient crea un Client con los base URLs dados.
// Si dataBase o gammaBase están vacíos, usa los URLs de producción.
func NewClient(dataBase, gammaBase string) *Client {
	if dataBase == "" {
		dataBase = defaultDataBase
	}
	if gammaBase == "" {
		gammaBase = defaultGammaBase
	}
	return &Client{
		// Sin Timeout global: cada llamada lleva su propio deadline.
		http:         &http.Client{},
		dataBase:     strings.TrimRight(dataBase, "/"),
		gammaBase:    strings.TrimRight(gammaBase, "/"),
		dataLimiter:  rate.NewLimiter(dataRatePerSec, 10),
		gammaLimiter: rate.NewLimiter(gammaRatePerSec, 10),
	}
}

// get hace un único GET con rate limiting y deadline propio.
// Un status distinto de 200 devuelve *StatusError.
func (c *Client) get(ctx context.Context, limiter *rate.Limiter, timeout time.Duration, url string, out any) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
