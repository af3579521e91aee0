package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestAuthorize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"authorizationId":"auth-123"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	res := client.Authorize(context.Background(), "19.99", "USD", "CARD")

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "auth-123", res.AuthorizationID)
}

func TestAuthorize_MissingAuthorizationIDIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	res := client.Authorize(context.Background(), "19.99", "USD", "CARD")

	assert.Equal(t, OutcomeTerminal, res.Outcome)
}

func TestAuthorize_5xxIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	res := client.Authorize(context.Background(), "19.99", "USD", "CARD")

	assert.Equal(t, OutcomeRetryable, res.Outcome)
	assert.True(t, res.IsRetryable())
}

func TestAuthorize_4xxIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"card declined"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	res := client.Authorize(context.Background(), "19.99", "USD", "CARD")

	assert.Equal(t, OutcomeTerminal, res.Outcome)
	assert.False(t, res.IsRetryable())
}

func TestVoid_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/void", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, testLogger())
	res := client.Void(context.Background(), "auth-123")

	assert.Equal(t, OutcomeSuccess, res.Outcome)
}

func TestAuthorize_NetworkErrorIsRetryable(t *testing.T) {
	client := New("http://127.0.0.1:0", 50*time.Millisecond, testLogger())
	res := client.Authorize(context.Background(), "19.99", "USD", "CARD")
	assert.Equal(t, OutcomeRetryable, res.Outcome)
}
