package janus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/victorgomez09/fantasy-manager/internal/domain/user"
	"github.com/victorgomez09/fantasy-manager/internal/platform/resilience"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientVerifyAccessToken_ParsesPrincipal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
			"role":    "admin",
		})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		discardLogger(),
	)

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}

	if principal.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
	if principal.Role != user.RoleAdmin {
		t.Fatalf("unexpected role: %s", principal.Role)
	}
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		discardLogger(),
	)

	_, err := client.VerifyAccessToken(context.Background(), "invalid-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_DefaultsToManagerRole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-456",
		})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		discardLogger(),
	)

	principal, err := client.VerifyAccessToken(context.Background(), "token-def")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.Role != user.RoleManager {
		t.Fatalf("expected manager fallback, got %s", principal.Role)
	}
}

func TestClientVerifyAccessToken_UsesPrincipalCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-cache",
		})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		discardLogger(),
	)

	for i := 0; i < 2; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.UserID != "user-cache" {
			t.Fatalf("unexpected user id: %s", principal.UserID)
		}
	}

	if calls.Load() != 1 {
		t.Fatalf("expected one introspection call with cache, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_OpenBreakerShortCircuits(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
		discardLogger(),
	)

	if _, err := client.VerifyAccessToken(context.Background(), "token-1"); err == nil {
		t.Fatal("expected failure from 500 response")
	}

	_, err := client.VerifyAccessToken(context.Background(), "token-2")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("open breaker must not call the service, calls=%d", calls.Load())
	}
}
