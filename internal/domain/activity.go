package domain

import "strings"

// ActivityEvent es una entrada del feed /activity de la Data API.
// Los campos numéricos ausentes quedan en cero; HasTimestamp distingue
// un timestamp ausente de uno igual a 0.
type ActivityEvent struct {
	Timestamp       int64 // unix, segundos
	HasTimestamp    bool
	TransactionHash string
	Type            string // TRADE | BUY | SELL | SPLIT | MERGE | REDEEM | DEPOSIT ...
	Side            string // BUY | SELL
	Price           float64
	Size            float64 // shares
	USDCSize        float64 // notional explícito, 0 si la API no lo envía
	Title           string  // pregunta del mercado
	Slug            string
	ConditionID     string
	Outcome         string
}

// tradeTypes son los tipos de actividad que cuentan como trade.
var tradeTypes = map[string]bool{
	"TRADE": true,
	"BUY":   true,
	"SELL":  true,
}

// IsTrade devuelve true si el tipo (sin distinguir mayúsculas) es TRADE, BUY o SELL.
func (e ActivityEvent) IsTrade() bool {
	return tradeTypes[strings.ToUpper(strings.TrimSpace(e.Type))]
}

// notionalRule es una forma de derivar el importe en USDC de un evento.
type notionalRule struct {
	name string
	fn   func(ActivityEvent) float64
}

// notionalRules se evalúan en orden y gana la primera que devuelve > 0.
// Size son shares: nunca se usa solo como importe monetario.
var notionalRules = []notionalRule{
	{name: "usdc_size", fn: func(e ActivityEvent) float64 { return e.USDCSize }},
	{name: "size_x_price", fn: func(e ActivityEvent) float64 {
		if e.Size > 0 && e.Price > 0 {
			return e.Size * e.Price
		}
		return 0
	}},
}

// Notional devuelve el importe en USDC del evento y la regla que lo produjo.
// Devuelve (0, "") si ninguna regla aplica.
func (e ActivityEvent) Notional() (float64, string) {
	for _, r := range notionalRules {
		if v := r.fn(e); v > 0 {
			return v, r.name
		}
	}
	return 0, ""
}

// MarketLabel devuelve la pregunta del mercado o un texto genérico.
func (e ActivityEvent) MarketLabel() string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	return UnknownMarket
}

// UnknownMarket es la etiqueta usada cuando el evento no trae título.
const UnknownMarket = "Unknown market"
