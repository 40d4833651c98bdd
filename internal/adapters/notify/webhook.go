package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	webhookTimeout = 10 * time.Second

	// Discord rechaza mensajes de más de 2000 caracteres.
	maxContentLen = 2000
)

// webhookPayload es el body que espera un webhook de Discord.
type webhookPayload struct {
	Content string `json:"content"`
}

// Webhook implementa ports.Notifier enviando el texto a un webhook de Discord.
type Webhook struct {
	http *http.Client
	url  string
}

// NewWebhook crea un notificador que hace POST al webhook dado.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		http: &http.Client{Timeout: webhookTimeout},
		url:  url,
	}
}

// Notify envía el mensaje. Un status fuera de 2xx se devuelve como error;
// no hay retries.
func (w *Webhook) Notify(ctx context.Context, text string) error {
	b, err := json.Marshal(webhookPayload{Content: truncate(text, maxContentLen)})
	if err != nil {
		return fmt.Errorf("notify.Webhook: marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("notify.Webhook: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("notify.Webhook: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify.Webhook: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// truncate corta s a max runas, terminando en "…" si se recortó.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
