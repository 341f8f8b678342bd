package dreocloud

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

// timeoutError satisfies net.Error the way transport timeouts do.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyNetworkError_Timeout(t *testing.T) {
	classified := ClassifyNetworkError(timeoutError{})

	if classified.Type != ErrTypeTimeout {
		t.Errorf("Type = %v, want Timeout", classified.Type)
	}
	if !classified.Retryable {
		t.Error("timeout should be retryable")
	}
}

func TestClassifyNetworkError_ConnectionRefused(t *testing.T) {
	err := &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}
	classified := ClassifyNetworkError(err)

	if classified.Type != ErrTypeConnectionRefused {
		t.Errorf("Type = %v, want ConnectionRefused", classified.Type)
	}
	if !classified.Retryable {
		t.Error("connection refused should be retryable")
	}
}

func TestClassifyNetworkError_DNS(t *testing.T) {
	err := &net.DNSError{Name: "api-na.dreo-cloud.com", Err: "no such host"}
	classified := ClassifyNetworkError(err)

	if classified.Type != ErrTypeDNS {
		t.Errorf("Type = %v, want DNS", classified.Type)
	}
	if classified.Retryable {
		t.Error("DNS failure should not be retryable")
	}
}

func TestClassifyNetworkError_UnwrapsURLError(t *testing.T) {
	inner := &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}
	wrapped := &url.Error{Op: "Post", URL: "https://api-na.dreo-cloud.com", Err: inner}

	classified := ClassifyNetworkError(wrapped)
	if classified.Type != ErrTypeConnectionRefused {
		t.Errorf("Type = %v, want ConnectionRefused", classified.Type)
	}
}

func TestClassifyNetworkError_Generic(t *testing.T) {
	classified := ClassifyNetworkError(fmt.Errorf("connection reset"))

	if classified.Type != ErrTypeTransport {
		t.Errorf("Type = %v, want Transport", classified.Type)
	}
	if !classified.Retryable {
		t.Error("generic network error should be retryable")
	}
}

func TestErrorKinds_Retryability(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"token format", NewTokenFormatError("bad suffix"), false},
		{"unsupported region", NewUnsupportedRegionError("no entry"), false},
		{"payload integrity", NewPayloadIntegrityError("auth failed", nil), false},
		{"auth rejected", NewAuthRejectedError(401), false},
		{"http 400", NewHTTPError(400, "bad request"), false},
		{"http 500", NewHTTPError(500, "server error"), true},
		{"http 503", NewHTTPError(503, "unavailable"), true},
		{"transport", NewTransportError("request failed", errors.New("reset")), true},
		{"plain error", errors.New("not a cloud error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	if !IsInvalidTokenFormat(NewTokenFormatError("x")) {
		t.Error("IsInvalidTokenFormat failed")
	}
	if !IsUnsupportedRegion(NewUnsupportedRegionError("x")) {
		t.Error("IsUnsupportedRegion failed")
	}
	if !IsPayloadIntegrityError(NewPayloadIntegrityError("x", nil)) {
		t.Error("IsPayloadIntegrityError failed")
	}
	if !IsAuthenticationRejected(NewAuthRejectedError(403)) {
		t.Error("IsAuthenticationRejected failed")
	}
	if !IsTransportError(NewTransportError("x", timeoutError{})) {
		t.Error("IsTransportError failed for timeout")
	}
	if IsTransportError(NewAuthRejectedError(401)) {
		t.Error("auth rejection must not classify as transport error")
	}
	if IsAuthenticationRejected(NewTokenFormatError("x")) {
		t.Error("token format must stay distinct from auth rejection")
	}
}

func TestCloudError_UnwrapChain(t *testing.T) {
	cause := errors.New("underlying cause")
	err := NewTransportError("request failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the underlying cause")
	}

	var cloudErr *CloudError
	wrapped := fmt.Errorf("operation failed: %w", err)
	if !errors.As(wrapped, &cloudErr) {
		t.Error("errors.As should find *CloudError through wrapping")
	}
}
