package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alejandrodnm/polywatch/internal/adapters/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhook_Notify_PostsContent(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := notify.NewWebhook(srv.URL).Notify(context.Background(), "🎯 trade")
	require.NoError(t, err)
	assert.Equal(t, "🎯 trade", got["content"])
}

func TestWebhook_Notify_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message": "You are being rate limited."}`))
	}))
	defer srv.Close()

	err := notify.NewWebhook(srv.URL).Notify(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestWebhook_Notify_TruncatesLongContent(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := notify.NewWebhook(srv.URL).Notify(context.Background(), strings.Repeat("é", 2500))
	require.NoError(t, err)
	assert.Equal(t, 2000, utf8.RuneCountInString(got["content"]))
	assert.True(t, strings.HasSuffix(got["content"], "…"))
}
