package dreocloud

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of a client failure.
type ErrorType int

const (
	// ErrTypeTokenFormat indicates a malformed token or unrecognized region
	// suffix. Not retryable; surfaced before anything touches the network.
	ErrTypeTokenFormat ErrorType = iota
	// ErrTypeUnsupportedRegion indicates a resolved region with no endpoint
	// entry. Not retryable; indicates a defect, not user error.
	ErrTypeUnsupportedRegion
	// ErrTypePayloadIntegrity indicates a response ciphertext that failed to
	// decrypt or validate. Not retryable; may indicate tampering or a
	// protocol mismatch.
	ErrTypePayloadIntegrity
	// ErrTypeTransport indicates a network-level failure (generic).
	ErrTypeTransport
	// ErrTypeTimeout indicates a request timeout.
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the server refused the connection.
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure.
	ErrTypeDNS
	// ErrTypeAuthRejected indicates the server rejected the (cleaned) token.
	// Not retryable; distinct from ErrTypeTokenFormat - the token was
	// syntactically valid but not accepted.
	ErrTypeAuthRejected
	// ErrTypeHTTP indicates a non-success HTTP status other than an auth
	// rejection. Server errors (5xx) are retryable.
	ErrTypeHTTP
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTokenFormat:
		return "Invalid Token Format"
	case ErrTypeUnsupportedRegion:
		return "Unsupported Region"
	case ErrTypePayloadIntegrity:
		return "Payload Integrity Error"
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeAuthRejected:
		return "Authentication Rejected"
	case ErrTypeHTTP:
		return "HTTP Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// CloudError is the typed error returned by all operations in this package.
type CloudError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying cause (if any)
	Retryable  bool      // Whether the retry policy applies
}

// Error implements the error interface. The message never contains token
// material; callers log CloudError values directly.
func (e *CloudError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for error chain inspection.
func (e *CloudError) Unwrap() error {
	return e.Err
}

// NewTokenFormatError reports a malformed token or unrecognized suffix.
func NewTokenFormatError(message string) *CloudError {
	return &CloudError{Type: ErrTypeTokenFormat, Message: message}
}

// NewUnsupportedRegionError reports a region with no endpoint entry.
func NewUnsupportedRegionError(message string) *CloudError {
	return &CloudError{Type: ErrTypeUnsupportedRegion, Message: message}
}

// NewPayloadIntegrityError reports a response that failed to decrypt or
// parse after decryption.
func NewPayloadIntegrityError(message string, err error) *CloudError {
	return &CloudError{Type: ErrTypePayloadIntegrity, Message: message, Err: err}
}

// NewAuthRejectedError reports a token the server refused.
func NewAuthRejectedError(statusCode int) *CloudError {
	return &CloudError{
		Type:       ErrTypeAuthRejected,
		Message:    "server rejected the access token",
		StatusCode: statusCode,
	}
}

// NewHTTPError reports a non-success HTTP status.
func NewHTTPError(statusCode int, message string) *CloudError {
	return &CloudError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500,
	}
}

// NewTransportError reports a network-level failure with a message that
// overrides the classified default.
func NewTransportError(message string, err error) *CloudError {
	classified := ClassifyNetworkError(err)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &CloudError{Type: ErrTypeTransport, Message: message, Err: err, Retryable: true}
}

// ClassifyNetworkError analyzes a transport-layer error and assigns the most
// specific error type. Timeouts and refused connections are retryable; DNS
// failures are not (retrying cannot fix a bad hostname).
func ClassifyNetworkError(err error) *CloudError {
	if err == nil {
		return nil
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &CloudError{
			Type:      ErrTypeConnectionRefused,
			Message:   "server refused connection",
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &CloudError{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:       err,
			Retryable: false,
		}
	}

	if os.IsTimeout(err) {
		return &CloudError{
			Type:      ErrTypeTimeout,
			Message:   "request timed out",
			Err:       err,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Classify the underlying cause; http.Client wraps everything.
		if classified := ClassifyNetworkError(urlErr.Err); classified != nil {
			classified.Err = err
			return classified
		}
	}

	return &CloudError{
		Type:      ErrTypeTransport,
		Message:   "network error",
		Err:       err,
		Retryable: true,
	}
}

// IsInvalidTokenFormat reports whether err is a token format failure.
func IsInvalidTokenFormat(err error) bool {
	return errorType(err) == ErrTypeTokenFormat
}

// IsUnsupportedRegion reports whether err is a missing endpoint entry.
func IsUnsupportedRegion(err error) bool {
	return errorType(err) == ErrTypeUnsupportedRegion
}

// IsPayloadIntegrityError reports whether err is a decrypt/validate failure.
func IsPayloadIntegrityError(err error) bool {
	return errorType(err) == ErrTypePayloadIntegrity
}

// IsAuthenticationRejected reports whether the server refused the token.
func IsAuthenticationRejected(err error) bool {
	return errorType(err) == ErrTypeAuthRejected
}

// IsTransportError reports whether err is a network-level failure of any
// kind (generic, timeout, refused, or DNS).
func IsTransportError(err error) bool {
	switch errorType(err) {
	case ErrTypeTransport, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
		return true
	}
	return false
}

// IsRetryable reports whether the retry policy applies to err. Unknown
// errors are not retried.
func IsRetryable(err error) bool {
	var cloudErr *CloudError
	if errors.As(err, &cloudErr) {
		return cloudErr.Retryable
	}
	return false
}

func errorType(err error) ErrorType {
	var cloudErr *CloudError
	if errors.As(err, &cloudErr) {
		return cloudErr.Type
	}
	return ErrorType(-1)
}
