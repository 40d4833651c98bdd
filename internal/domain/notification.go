package domain

import "fmt"

// NotAvailable se muestra cuando falta el precio de ejecución.
const NotAvailable = "N/A"

// Notification es el contenido de un aviso de trade, antes de renderizarlo a texto.
type Notification struct {
	TraderLabel string
	AmountUSDC  float64
	Shares      float64 // 0 = no se muestra
	Side        string
	Price       float64 // 0 = no disponible
	MarketLabel string
	MarketURL   string
}

// Odds devuelve el precio con 3 decimales o N/A si no hay precio.
func (n Notification) Odds() string {
	if n.Price <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.3f", n.Price)
}

// ShortAddress abrevia una dirección a "0x1234...abcd".
// Direcciones de 10 caracteres o menos se devuelven tal cual.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
