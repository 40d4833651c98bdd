package domain

import "strings"

const (
	// PolymarketHome es el último recurso cuando no hay nada con qué construir un link.
	PolymarketHome = "https://polymarket.com"

	eventURLPrefix = PolymarketHome + "/event/"
	txURLPrefix    = "https://polygonscan.com/tx/"
)

// LinkKind indica de qué campo salió el link del mercado.
type LinkKind string

const (
	LinkSlug        LinkKind = "slug"
	LinkCondition   LinkKind = "condition_id" // puede dar 404, best-effort
	LinkTransaction LinkKind = "tx"
	LinkHome        LinkKind = "home"
)

// linkRule construye un link a partir de un campo del evento.
// Devuelve "" si el campo está vacío.
type linkRule struct {
	kind LinkKind
	fn   func(ActivityEvent) string
}

var linkRules = []linkRule{
	{LinkSlug, func(e ActivityEvent) string { return withPrefix(eventURLPrefix, e.Slug) }},
	{LinkCondition, func(e ActivityEvent) string { return withPrefix(eventURLPrefix, e.ConditionID) }},
	{LinkTransaction, func(e ActivityEvent) string { return withPrefix(txURLPrefix, e.TransactionHash) }},
}

// MarketLink devuelve el mejor link disponible para el evento:
// slug > condition_id > transacción en polygonscan > home de Polymarket.
func (e ActivityEvent) MarketLink() (string, LinkKind) {
	for _, r := range linkRules {
		if u := r.fn(e); u != "" {
			return u, r.kind
		}
	}
	return PolymarketHome, LinkHome
}

func withPrefix(prefix, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	return prefix + v
}
