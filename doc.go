// Package dreocloud provides a client for the Dreo cloud API for networked
// smart devices.
//
// The package resolves the regional API endpoint from a user-supplied access
// token, sanitizes the token for transmission, and performs encrypted status
// query/update operations against that endpoint. Callers never deal with
// region routing or payload encryption themselves.
//
// # Tokens and Regions
//
// Access tokens are issued as either "<secret>" or "<secret>:<REGION>" where
// REGION is "NA" or "EU" (case-insensitive). Tokens without a suffix predate
// region support and resolve to North America. The suffix is routing
// metadata only: it is stripped before the token is transmitted or logged.
//
//	region, clean, err := dreocloud.ParseToken("abc123:EU")
//	// region == dreocloud.RegionEurope, clean == "abc123"
//
// # Sessions
//
// A DeviceSession orchestrates the full request pipeline: token parsing,
// endpoint resolution, payload encryption, dispatch, response decryption,
// and error classification with bounded retries.
//
//	session := dreocloud.NewDeviceSession()
//	status, err := session.QueryStatus(ctx, token, "fan-1234")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(status.Attributes["poweron"])
//
// Updates carry the attributes to change and return the device's new status:
//
//	status, err = session.UpdateStatus(ctx, token, "fan-1234",
//	    map[string]any{"poweron": true, "windlevel": 3})
//
// The session caches the most recent status per device; CachedStatus exposes
// it without a network round trip. Every QueryStatus call goes to the
// network - the cache is a read-only convenience.
//
// # Concurrency
//
// The endpoint table is immutable and safe to share. A single DeviceSession
// is not safe for unsynchronized concurrent use; callers issuing concurrent
// requests should use one session per goroutine.
//
// # Errors
//
// All failures are surfaced as *CloudError with a classified type. Transport
// failures (timeout, connection refused, 5xx) are retried with exponential
// backoff; token format, region, payload integrity, and authentication
// failures are never retried. See IsRetryable and the Is* helpers.
//
// # Push Events
//
// WebSocketClient subscribes to server-pushed device events over the same
// region-resolved infrastructure. See WebSocketClient for details.
package dreocloud
