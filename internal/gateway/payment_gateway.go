// Package gateway is the outbound client for the external payment
// authorization endpoint. It classifies responses into success,
// terminal failure, and retryable failure, but does not itself retry:
// that policy lives in internal/retry and is driven by the Payment
// Service.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// AuthorizeRequest is the outbound body for POST {auth_url}.
type AuthorizeRequest struct {
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod"`
}

// AuthorizeResponse is the inbound 2xx body. AuthorizationID is
// required for the response to count as a success; a 2xx with no
// authorization id is treated as a terminal failure.
type AuthorizeResponse struct {
	AuthorizationID string `json:"authorizationId"`
}

// VoidRequest is the outbound body for POST {auth_url}/void.
type VoidRequest struct {
	AuthorizationID string `json:"authorizationId"`
}

// Outcome classifies a gateway call result for the Payment Service.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeTerminal
	OutcomeRetryable
)

// CallResult carries the classified outcome plus whatever detail the
// caller needs to persist (authorization id on success, message on
// failure).
type CallResult struct {
	Outcome         Outcome
	AuthorizationID string
	Message         string
}

// Gateway is the surface the Payment Service drives. It exists so tests
// can substitute a fake gateway without an HTTP server.
type Gateway interface {
	Authorize(ctx context.Context, amount, currency, method string) CallResult
	Void(ctx context.Context, authorizationID string) CallResult
}

// Client calls the external payment gateway over HTTPS using net/http
// directly, the same way the inbound health server talks plain HTTP
// without a routing or client framework in between.
type Client struct {
	httpClient *http.Client
	authURL    string
	logger     zerolog.Logger
}

// New builds a Client bound to authURL (e.g. "https://gateway.example.com/v1/authorize")
// with a configurable per-attempt timeout.
func New(authURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		authURL:    authURL,
		logger:     logger.With().Str("component", "payment_gateway").Logger(),
	}
}

// Authorize sends the authorize request for one attempt and classifies
// the result. It never retries; callers drive retry via internal/retry.
func (c *Client) Authorize(ctx context.Context, amount, currency, method string) CallResult {
	body, err := json.Marshal(AuthorizeRequest{Amount: amount, Currency: currency, PaymentMethod: method})
	if err != nil {
		return CallResult{Outcome: OutcomeTerminal, Message: fmt.Sprintf("marshal authorize request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, bytes.NewReader(body))
	if err != nil {
		return CallResult{Outcome: OutcomeTerminal, Message: fmt.Sprintf("build authorize request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("authorize request failed")
		return CallResult{Outcome: OutcomeRetryable, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var parsed AuthorizeResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil || parsed.AuthorizationID == "" {
			return CallResult{Outcome: OutcomeTerminal, Message: "gateway returned no authorizationId"}
		}
		return CallResult{Outcome: OutcomeSuccess, AuthorizationID: parsed.AuthorizationID}
	case resp.StatusCode >= 500:
		return CallResult{Outcome: OutcomeRetryable, Message: fmt.Sprintf("gateway status %d: %s", resp.StatusCode, string(respBody))}
	default:
		return CallResult{Outcome: OutcomeTerminal, Message: fmt.Sprintf("gateway status %d: %s", resp.StatusCode, string(respBody))}
	}
}

// Void sends the void request for one attempt and classifies the
// result. An empty 2xx body is acceptable.
func (c *Client) Void(ctx context.Context, authorizationID string) CallResult {
	body, err := json.Marshal(VoidRequest{AuthorizationID: authorizationID})
	if err != nil {
		return CallResult{Outcome: OutcomeTerminal, Message: fmt.Sprintf("marshal void request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL+"/void", bytes.NewReader(body))
	if err != nil {
		return CallResult{Outcome: OutcomeTerminal, Message: fmt.Sprintf("build void request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("void request failed")
		return CallResult{Outcome: OutcomeRetryable, Message: err.Error()}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return CallResult{Outcome: OutcomeSuccess}
	case resp.StatusCode >= 500:
		return CallResult{Outcome: OutcomeRetryable, Message: fmt.Sprintf("gateway status %d", resp.StatusCode)}
	default:
		return CallResult{Outcome: OutcomeTerminal, Message: fmt.Sprintf("gateway status %d", resp.StatusCode)}
	}
}

// IsRetryable classifies a CallResult for use as a retry.Classifier,
// bridging CallResult.Outcome into the boolean the retry package wants.
func (c CallResult) IsRetryable() bool {
	return c.Outcome == OutcomeRetryable
}
