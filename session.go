package dreocloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dreoctl/dreocloud/internal/logging"
)

const (
	// DefaultMaxRetries is the number of retry attempts after the first
	// failed transport attempt.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the initial delay before the first retry.
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetryDelay caps the exponential backoff.
	DefaultMaxRetryDelay = 30 * time.Second
)

const (
	queryPath  = "/api/v1/device/status"
	updatePath = "/api/v1/device/control"
)

// DeviceSession orchestrates authenticated device calls: token resolution,
// endpoint selection, payload encryption, dispatch, response decryption,
// and failure classification with bounded retries.
//
// A session is cheap to create and holds no network state of its own. It is
// not safe for unsynchronized concurrent use; callers needing concurrency
// should use one session per goroutine.
type DeviceSession struct {
	// MaxRetries is the maximum number of retry attempts for retryable
	// transport failures.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts.
	RetryDelay time.Duration

	// MaxRetryDelay caps the exponential backoff.
	MaxRetryDelay time.Duration

	transport Transport
	cache     *statusCache
}

// NewDeviceSession creates a session with the default HTTPS transport and
// retry policy.
func NewDeviceSession() *DeviceSession {
	return &DeviceSession{
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
		transport:     NewHTTPTransport(DefaultTimeout),
		cache:         newStatusCache(),
	}
}

// NewDeviceSessionWithTransport creates a session over a caller-supplied
// transport. Used for testing and for callers with bespoke HTTP needs
// (proxies, instrumentation).
func NewDeviceSessionWithTransport(transport Transport) *DeviceSession {
	s := NewDeviceSession()
	s.transport = transport
	return s
}

// SetTimeout sets the per-attempt transport timeout. Only effective for the
// default HTTP transport.
func (s *DeviceSession) SetTimeout(timeout time.Duration) {
	if ht, ok := s.transport.(*HTTPTransport); ok {
		ht.Client.Timeout = timeout
	}
}

// SetRetry configures the retry policy.
func (s *DeviceSession) SetRetry(maxRetries int, retryDelay time.Duration) {
	s.MaxRetries = maxRetries
	s.RetryDelay = retryDelay
}

// QueryStatus reads the current status of a device. Every call goes to the
// network; the cache is never consulted to satisfy a query.
func (s *DeviceSession) QueryStatus(ctx context.Context, rawToken, deviceID string) (*DeviceStatus, error) {
	return s.do(ctx, rawToken, deviceID, methodQuery, queryPath, nil)
}

// UpdateStatus changes device attributes and returns the resulting status
// as reported by the server.
func (s *DeviceSession) UpdateStatus(ctx context.Context, rawToken, deviceID string, attributes map[string]any) (*DeviceStatus, error) {
	return s.do(ctx, rawToken, deviceID, methodUpdate, updatePath, attributes)
}

// CachedStatus returns the last status the session saw for a device, if
// any, without a network round trip. The returned value is a copy owned by
// the caller.
func (s *DeviceSession) CachedStatus(deviceID string) (*DeviceStatus, bool) {
	status, ok := s.cache.get(deviceID)
	if !ok {
		return nil, false
	}
	return status.clone(), true
}

// do runs the shared request pipeline for both operations.
func (s *DeviceSession) do(ctx context.Context, rawToken, deviceID, method, path string, params map[string]any) (*DeviceStatus, error) {
	region, cleanToken, err := ParseToken(rawToken)
	if err != nil {
		return nil, err
	}

	endpoint, err := ResolveEndpoint(region)
	if err != nil {
		return nil, err
	}

	logging.Debug("resolved endpoint",
		zap.Stringer("region", region),
		zap.String("base_url", endpoint.BaseURL),
		zap.String("token", logging.RedactToken(cleanToken)),
		zap.String("device_id", deviceID),
		zap.String("method", method),
	)

	request := statusRequest{
		DeviceID:  deviceID,
		Method:    method,
		Params:    params,
		Timestamp: time.Now().UnixMilli(),
	}
	plain, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	cipherBytes, err := EncryptPayload(endpoint.Crypto, plain)
	if err != nil {
		return nil, fmt.Errorf("encrypt request: %w", err)
	}

	// Only the clean token crosses the transport boundary from here on.
	responseBody, err := s.dispatch(ctx, endpoint.BaseURL+path, cleanToken, cipherBytes)
	if err != nil {
		return nil, err
	}

	status, err := s.decodeStatus(endpoint.Crypto, deviceID, responseBody)
	if err != nil {
		return nil, err
	}

	s.cache.put(deviceID, status)
	return status.clone(), nil
}

// dispatch sends the encrypted request, applying the retry policy to
// transport-layer failures. Authentication and client errors are terminal:
// retrying cannot change a credential mismatch.
func (s *DeviceSession) dispatch(ctx context.Context, endpointURL, cleanToken string, body []byte) ([]byte, error) {
	var lastErr error
	currentDelay := s.RetryDelay

	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			logging.Debug("retrying request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", currentDelay),
			)
			if err := sleepContext(ctx, currentDelay); err != nil {
				return nil, &CloudError{
					Type:    ErrTypeTransport,
					Message: "cancelled while waiting to retry",
					Err:     err,
				}
			}
			currentDelay *= 2
			if currentDelay > s.MaxRetryDelay {
				currentDelay = s.MaxRetryDelay
			}
		}

		statusCode, responseBody, err := s.transport.Send(ctx, endpointURL, cleanToken, body)
		if err != nil {
			// Custom transports may return unclassified errors
			var cloudErr *CloudError
			if !errors.As(err, &cloudErr) {
				err = ClassifyNetworkError(err)
			}
			lastErr = err
			if !IsRetryable(err) {
				return nil, err
			}
			continue
		}

		switch {
		case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
			return nil, NewAuthRejectedError(statusCode)
		case statusCode >= 200 && statusCode < 300:
			return responseBody, nil
		default:
			httpErr := NewHTTPError(statusCode, fmt.Sprintf("unexpected status code: %d", statusCode))
			lastErr = httpErr
			if !httpErr.Retryable {
				return nil, httpErr
			}
		}
	}

	return nil, &CloudError{
		Type:      ErrTypeTransport,
		Message:   fmt.Sprintf("retry budget exhausted after %d attempts", s.MaxRetries+1),
		Err:       lastErr,
		Retryable: false,
	}
}

// decodeStatus decrypts and validates the response envelope. Any failure
// here is a payload integrity error: no partial data is surfaced.
func (s *DeviceSession) decodeStatus(params CryptoParams, deviceID string, responseBody []byte) (*DeviceStatus, error) {
	plain, err := DecryptPayload(params, responseBody)
	if err != nil {
		return nil, err
	}

	var response statusResponse
	if err := json.Unmarshal(plain, &response); err != nil {
		return nil, NewPayloadIntegrityError("response decrypted to invalid structure", err)
	}
	if response.DeviceID == "" {
		response.DeviceID = deviceID
	}
	if response.Mixed == nil {
		return nil, NewPayloadIntegrityError("response carries no device state", nil)
	}

	timestamp := time.UnixMilli(response.Timestamp)
	if response.Timestamp == 0 {
		timestamp = time.Now()
	}

	return &DeviceStatus{
		DeviceID:   response.DeviceID,
		Attributes: response.Mixed,
		Timestamp:  timestamp,
	}, nil
}

// sleepContext waits for the duration or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
