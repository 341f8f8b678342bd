package dreocloud

import (
	"fmt"
	"strings"
)

// regionDelimiter separates the token secret from its optional region suffix.
const regionDelimiter = ":"

// Region identifies a geographic deployment of the Dreo cloud. Each region
// has its own API endpoint and crypto parameters.
type Region int

const (
	// RegionNorthAmerica is the default region. Tokens issued before region
	// support existed carry no suffix and resolve here.
	RegionNorthAmerica Region = iota

	// RegionEurope is selected by the "EU" token suffix.
	RegionEurope
)

// regionCodes maps a token suffix (upper-cased) to its region.
var regionCodes = map[string]Region{
	"NA": RegionNorthAmerica,
	"EU": RegionEurope,
}

// String returns the canonical region code.
func (r Region) String() string {
	switch r {
	case RegionNorthAmerica:
		return "NA"
	case RegionEurope:
		return "EU"
	default:
		return fmt.Sprintf("Region(%d)", int(r))
	}
}

// ParseToken splits a raw access token into its region and clean token.
//
// The token is split on the last occurrence of the region delimiter. A
// recognized suffix ("NA" or "EU", case-insensitive) selects that region and
// is stripped; an unrecognized suffix is rejected rather than silently
// defaulted, since it almost always indicates caller error. Tokens without a
// delimiter resolve to North America with the whole string as the clean
// token.
//
// The returned clean token never contains the delimiter or a region code.
// It is the exact value transmitted to the server.
func ParseToken(rawToken string) (Region, string, error) {
	if rawToken == "" {
		return RegionNorthAmerica, "", NewTokenFormatError("token is empty")
	}

	idx := strings.LastIndex(rawToken, regionDelimiter)
	if idx < 0 {
		// Pre-region token: no suffix, whole string is the secret.
		return RegionNorthAmerica, rawToken, nil
	}

	secret := rawToken[:idx]
	suffix := rawToken[idx+1:]

	region, ok := regionCodes[strings.ToUpper(suffix)]
	if !ok {
		return RegionNorthAmerica, "", NewTokenFormatError(
			fmt.Sprintf("unrecognized region suffix %q (expected NA or EU)", suffix))
	}

	if secret == "" {
		return RegionNorthAmerica, "", NewTokenFormatError("token secret is empty")
	}

	return region, secret, nil
}

// CleanToken strips the region suffix from a raw token, returning only the
// secret portion. It is a pure function: callers that need to re-sanitize a
// token before logging or a secondary API call can use it without
// re-deriving the region.
//
// Tokens without a delimiter are returned unchanged. CleanToken is
// idempotent for any token whose secret contains no delimiter.
func CleanToken(rawToken string) string {
	idx := strings.LastIndex(rawToken, regionDelimiter)
	if idx < 0 {
		return rawToken
	}
	return rawToken[:idx]
}
