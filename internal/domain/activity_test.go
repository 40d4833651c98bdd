package domain_test

import (
	"testing"

	"github.com/alejandrodnm/polywatch/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestActivityEvent_IsTrade(t *testing.T) {
	cases := map[string]bool{
		"TRADE":   true,
		"trade":   true,
		"Buy":     true,
		"SELL":    true,
		" sell ":  true,
		"DEPOSIT": false,
		"REDEEM":  false,
		"SPLIT":   false,
		"":        false,
	}
	for typ, want := range cases {
		e := domain.ActivityEvent{Type: typ}
		assert.Equal(t, want, e.IsTrade(), "type %q", typ)
	}
}

func TestActivityEvent_Notional_ExplicitUSDC(t *testing.T) {
	e := domain.ActivityEvent{USDCSize: 10, Size: 24, Price: 0.42}
	v, rule := e.Notional()
	assert.InDelta(t, 10.0, v, 1e-9)
	assert.Equal(t, "usdc_size", rule)
}

func TestActivityEvent_Notional_DerivedFromPrice(t *testing.T) {
	e := domain.ActivityEvent{Size: 20, Price: 0.1}
	v, rule := e.Notional()
	assert.InDelta(t, 2.0, v, 1e-9)
	assert.Equal(t, "size_x_price", rule)
}

func TestActivityEvent_Notional_SharesNeverUsedAsMoney(t *testing.T) {
	// Sin usdcSize ni precio, 20 shares no son 20 USDC.
	e := domain.ActivityEvent{Size: 20}
	v, rule := e.Notional()
	assert.Zero(t, v)
	assert.Empty(t, rule)
}

func TestActivityEvent_MarketLink_Priority(t *testing.T) {
	full := domain.ActivityEvent{
		Slug:            "will-x-happen",
		ConditionID:     "0xcond",
		TransactionHash: "0xabc",
	}

	u, kind := full.MarketLink()
	assert.Equal(t, "https://polymarket.com/event/will-x-happen", u)
	assert.Equal(t, domain.LinkSlug, kind)

	noSlug := full
	noSlug.Slug = "   "
	u, kind = noSlug.MarketLink()
	assert.Equal(t, "https://polymarket.com/event/0xcond", u)
	assert.Equal(t, domain.LinkCondition, kind)

	txOnly := domain.ActivityEvent{TransactionHash: "0xabc"}
	u, kind = txOnly.MarketLink()
	assert.Equal(t, "https://polygonscan.com/tx/0xabc", u)
	assert.Equal(t, domain.LinkTransaction, kind)

	u, kind = domain.ActivityEvent{}.MarketLink()
	assert.Equal(t, "https://polymarket.com", u)
	assert.Equal(t, domain.LinkHome, kind)
}

func TestActivityEvent_MarketLabel(t *testing.T) {
	assert.Equal(t, "Will X happen?", domain.ActivityEvent{Title: "Will X happen?"}.MarketLabel())
	assert.Equal(t, domain.UnknownMarket, domain.ActivityEvent{}.MarketLabel())
}

func TestNotification_Odds(t *testing.T) {
	assert.Equal(t, "0.420", domain.Notification{Price: 0.42}.Odds())
	assert.Equal(t, domain.NotAvailable, domain.Notification{}.Odds())
}

func TestShortAddress(t *testing.T) {
	addr := "0x1234567890abcdef1234567890abcdef12345678"
	assert.Equal(t, "0x1234...5678", domain.ShortAddress(addr))
	assert.Equal(t, "0xabc", domain.ShortAddress("0xabc"))
}

func TestProfile_DisplayName(t *testing.T) {
	addr := "0x1234567890abcdef1234567890abcdef12345678"

	assert.Equal(t, "alice", domain.Profile{Address: addr, Username: "alice", Name: "Alice"}.DisplayName())
	assert.Equal(t, "ghost", domain.Profile{Address: addr, Pseudonym: "ghost", Name: "Alice"}.DisplayName())
	assert.Equal(t, "Alice", domain.Profile{Address: addr, Username: " ", Name: "Alice"}.DisplayName())
	assert.Equal(t, "0x1234...5678", domain.Profile{Address: addr}.DisplayName())
}
