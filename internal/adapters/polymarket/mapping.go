package polymarket

import (
	"strconv"
	"strings"

	"github.com/alejandrodnm/polywatch/internal/domain"
)

// mapActivity convierte una entrada raw. Para título y slug la API usa
// varios nombres según la versión; se toma el primero no vacío.
func mapActivity(r rawActivity) domain.ActivityEvent {
	ts, ok := parseUnixSeconds(r.Timestamp)
	return domain.ActivityEvent{
		Timestamp:       ts,
		HasTimestamp:    ok,
		TransactionHash: strings.TrimSpace(r.TransactionHash),
		Type:            r.Type,
		Side:            r.Side,
		Price:           numberOrZero(r.Price),
		Size:            numberOrZero(r.Size),
		USDCSize:        numberOrZero(r.USDCSize),
		Title:           firstNonEmpty(r.MarketQuestion, r.Title),
		Slug:            firstNonEmpty(r.MarketSlug, r.EventSlug, r.Slug),
		ConditionID:     strings.TrimSpace(r.ConditionID),
		Outcome:         r.Outcome,
	}
}

// mapProfile convierte la respuesta de /public-profile.
func mapProfile(address string, r rawProfile) domain.Profile {
	return domain.Profile{
		Address:   address,
		Username:  r.Username,
		Pseudonym: r.Pseudonym,
		Name:      r.Name,
	}
}

// parseUnixSeconds interpreta un timestamp unix en segundos o milisegundos.
// Devuelve false si el campo está ausente o no es numérico.
func parseUnixSeconds(n flexNumber) (int64, bool) {
	s := string(n)
	if s == "" {
		return 0, false
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		if sec > 1e12 {
			return sec / 1000, true
		}
		return sec, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f > 1e12 {
			f /= 1000
		}
		return int64(f), true
	}
	return 0, false
}

func numberOrZero(n flexNumber) float64 {
	if n == "" {
		return 0
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0
	}
	return f
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
