// Package logging provides structured logging for the dreocloud client.
//
// This package wraps zap with convenience functions for the logging
// patterns used by the library and CLI. The library is silent by default:
// unless DREOCLOUD_LOG_LEVEL is set (or Initialize is called with an
// explicit level), all log calls hit a nop logger.
//
// # Log Levels
//
//   - Debug: request pipeline detail (resolved region, retry attempts)
//   - Info: normal operations
//   - Warn: non-fatal issues (connection drops, retries)
//   - Error: fatal issues
//
// # Credential Safety
//
// No raw or suffixed access token may ever appear in a log line. Call sites
// log tokens only through RedactToken, and only after cleaning:
//
//	logging.Debug("resolved endpoint",
//	    zap.String("token", logging.RedactToken(cleanToken)),
//	)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
