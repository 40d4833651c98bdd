package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/polywatch/internal/adapters/storage"
	"github.com/alejandrodnm/polywatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAlert(tx string, amount float64, created time.Time) domain.Alert {
	return domain.Alert{
		Trader:     "0x1234567890abcdef1234567890abcdef12345678",
		TxHash:     tx,
		AmountUSDC: amount,
		Side:       "BUY",
		Price:      0.42,
		Market:     "Will X happen?",
		MarketURL:  "https://polymarket.com/event/will-x-happen",
		Delivered:  true,
		EventTime:  created.Add(-time.Second),
		CreatedAt:  created,
	}
}

func TestSQLiteStorage_SaveAndRecent(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().Truncate(time.Millisecond)

	require.NoError(t, db.SaveAlert(ctx, makeAlert("0xaaa", 10, now.Add(-time.Minute))))
	require.NoError(t, db.SaveAlert(ctx, makeAlert("0xbbb", 25.5, now)))

	alerts, err := db.RecentAlerts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	// Más recientes primero
	assert.Equal(t, "0xbbb", alerts[0].TxHash)
	assert.Equal(t, "0xaaa", alerts[1].TxHash)

	a := alerts[0]
	assert.NotEmpty(t, a.ID, "debe asignar un UUID")
	assert.InDelta(t, 25.5, a.AmountUSDC, 0.001)
	assert.True(t, a.Delivered)
	assert.Equal(t, now.UnixMilli(), a.CreatedAt.UnixMilli())
	assert.Equal(t, now.Add(-time.Second).Unix(), a.EventTime.Unix())
}

func TestSQLiteStorage_RecentAlerts_Limit(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, db.SaveAlert(ctx, makeAlert("0x"+string(rune('a'+i)), 10, now.Add(time.Duration(i)*time.Second))))
	}

	alerts, err := db.RecentAlerts(ctx, 3)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "0xe", alerts[0].TxHash)
}

func TestSQLiteStorage_FailedDelivery(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	a := makeAlert("0xfail", 7, time.Now())
	a.Delivered = false
	a.Error = "status 500"
	require.NoError(t, db.SaveAlert(ctx, a))

	alerts, err := db.RecentAlerts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.False(t, alerts[0].Delivered)
	assert.Equal(t, "status 500", alerts[0].Error)
}

func TestSQLiteStorage_RecentAlerts_Empty(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	alerts, err := db.RecentAlerts(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
