package janus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/victorgomez09/fantasy-manager/internal/domain/user"
	"github.com/victorgomez09/fantasy-manager/internal/platform/cache"
	"github.com/victorgomez09/fantasy-manager/internal/platform/resilience"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

const principalCacheTTL = 30 * time.Second

// Client introspects bearer tokens against the Janus identity service.
// Verified principals are cached briefly and the call path sits behind a
// circuit breaker, so an identity outage degrades to rejected logins
// instead of hung requests.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	breaker       *resilience.CircuitBreaker
	principals    *cache.Store
	logger        *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL, introspectPath string, breakerCfg resilience.CircuitBreakerConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	breakerCfg = resilience.NormalizeCircuitBreakerConfig(breakerCfg)

	var breaker *resilience.CircuitBreaker
	if breakerCfg.Enabled {
		breaker = resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		breaker:       breaker,
		principals:    cache.NewStore(principalCacheTTL),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := "principal:" + token
	if cached, ok := c.principals.Get(ctx, cacheKey); ok {
		if principal, ok := cached.(user.Principal); ok {
			return principal, nil
		}
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, fmt.Errorf("%w: identity service unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.introspect(ctx, token)
	if err != nil {
		// Rejected tokens are the service answering normally; only
		// transport and server failures count against the breaker.
		if c.breaker != nil && !errors.Is(err, usecase.ErrUnauthorized) {
			c.breaker.RecordFailure()
		}
		return user.Principal{}, err
	}

	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
	c.principals.Set(ctx, cacheKey, principal)

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "request introspection from janus")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "read introspect response")
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "janus introspection non-200",
			"status_code", resp.StatusCode,
		)
		return user.Principal{}, errors.Newf("janus introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, errors.Wrap(err, "unmarshal introspect response")
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, errors.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Role:   user.ParseRole(decoded.Role),
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
