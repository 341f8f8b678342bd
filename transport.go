package dreocloud

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// UserAgent identifies this client to the Dreo cloud.
const UserAgent = "dreocloud-go/1.0"

// DefaultTimeout bounds a single transport attempt so an unresponsive
// server cannot hang the caller indefinitely.
const DefaultTimeout = 10 * time.Second

// Transport sends one encrypted request to a regional endpoint and returns
// the status code and encrypted response body. Implementations must honor
// context cancellation and return a transport-level error on network
// failure.
//
// The cleanToken argument is always the sanitized token: the session never
// passes a raw suffixed token across this boundary.
type Transport interface {
	Send(ctx context.Context, endpointURL, cleanToken string, body []byte) (statusCode int, responseBody []byte, err error)
}

// HTTPTransport is the default Transport over HTTPS.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport creates a transport with the given per-attempt timeout.
// A zero timeout uses DefaultTimeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPTransport{
		Client: &http.Client{Timeout: timeout},
	}
}

// Send POSTs the encrypted body to endpointURL with the clean token as a
// bearer credential. Network failures are returned classified.
func (t *HTTPTransport) Send(ctx context.Context, endpointURL, cleanToken string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, NewTransportError("failed to create request", err)
	}

	req.Header.Set("Authorization", "Bearer "+cleanToken)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := t.Client.Do(req)
	if err != nil {
		return 0, nil, NewTransportError("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, NewTransportError("failed to read response body", err)
	}

	return resp.StatusCode, responseBody, nil
}
