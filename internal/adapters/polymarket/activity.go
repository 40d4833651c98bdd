package polymarket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/alejandrodnm/polywatch/internal/domain"
)

const activityPath = "/activity"

// ErrMalformedBody indica que /activity respondió 200 pero el body no es una lista.
var ErrMalformedBody = errors.New("activity body is not a list")

// FetchActivity obtiene las últimas limit entradas de actividad del trader,
// más recientes primero. Hace un único intento: el poller reintenta en el siguiente ciclo.
func (c *Client) FetchActivity(ctx context.Context, trader string, limit int) ([]domain.ActivityEvent, error) {
	q := url.Values{}
	q.Set("user", strings.ToLower(trader))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sortBy", "TIMESTAMP")
	q.Set("sortDirection", "DESC")
	u := c.dataBase + activityPath + "?" + q.Encode()

	var body json.RawMessage
	if err := c.get(ctx, c.dataLimiter, activityTimeout, u, &body); err != nil {
		return nil, fmt.Errorf("data-api.FetchActivity: %w", err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("data-api.FetchActivity: %w", ErrMalformedBody)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("data-api.FetchActivity: %w: %v", ErrMalformedBody, err)
	}

	// Cada entrada se decodifica por separado: una mal formada se descarta
	// sin perder el resto de la página.
	events := make([]domain.ActivityEvent, 0, len(entries))
	for i, e := range entries {
		var r rawActivity
		if err := json.Unmarshal(e, &r); err != nil {
			slog.Warn("skipping malformed activity entry",
				"trader", domain.ShortAddress(trader),
				"index", i,
				"err", err,
			)
			continue
		}
		events = append(events, mapActivity(r))
	}

	slog.Debug("fetched activity",
		"trader", domain.ShortAddress(trader),
		"count", len(entries),
		"decoded", len(events),
	)
	return events, nil
}
