package polymarket

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DTOs raw de la API de Polymarket. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// flexNumber es un numérico que llega como número JSON o como string.
// null, "" o un string no numérico quedan como ausente ("") en vez de
// romper el decode de la entrada entera.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = ""
			return nil
		}
		s = strings.TrimSpace(s)
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			*n = ""
			return nil
		}
		*n = flexNumber(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		*n = ""
		return nil
	}
	*n = flexNumber(data)
	return nil
}

// --- Data API ---

// rawActivity es una entrada de GET /activity.
type rawActivity struct {
	Timestamp       flexNumber `json:"timestamp"`
	ConditionID     string     `json:"conditionId"`
	Type            string     `json:"type"`
	Size            flexNumber `json:"size"`
	USDCSize        flexNumber `json:"usdcSize"`
	TransactionHash string     `json:"transactionHash"`
	Price           flexNumber `json:"price"`
	Side            string     `json:"side"`
	Outcome         string     `json:"outcome"`
	Title           string     `json:"title"`
	MarketQuestion  string     `json:"marketQuestion"`
	Slug            string     `json:"slug"`
	MarketSlug      string     `json:"marketSlug"`
	EventSlug       string     `json:"eventSlug"`
}

// --- Gamma API ---

// rawProfile es la respuesta de GET /public-profile.
type rawProfile struct {
	Username  string `json:"username"`
	Pseudonym string `json:"pseudonym"`
	Name      string `json:"name"`
}
