package watcher

import (
	"fmt"
	"strings"

	"github.com/alejandrodnm/polywatch/internal/domain"
)

const tradeTemplate = "🎯 **NEW POLYMARKET TRADE**\n\n" +
	"👤 Trader: **%s**\n" +
	"💵 Amount: **%.2f USDC%s**\n" +
	"📊 Side: **%s**\n" +
	"💰 Execution price: **%s**\n" +
	"📌 Market: **%s**\n" +
	"🔗 Market/tx link: %s"

// DefaultStartupMessage se envía al arrancar si la config no define otro.
const DefaultStartupMessage = "✅ Trade watcher started – market links (slug) first"

// FormatNotification renderiza la notificación con el template fijo.
func FormatNotification(n domain.Notification) string {
	shares := ""
	if n.Shares > 0 {
		shares = fmt.Sprintf(" (%.0f shares)", n.Shares)
	}

	side := strings.TrimSpace(n.Side)
	if side == "" {
		side = "?"
	}

	market := strings.TrimSpace(n.MarketLabel)
	if market == "" {
		market = domain.UnknownMarket
	}

	return fmt.Sprintf(tradeTemplate,
		n.TraderLabel,
		n.AmountUSDC,
		shares,
		side,
		n.Odds(),
		market,
		n.MarketURL,
	)
}
