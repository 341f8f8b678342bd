package dreocloud

import (
	"encoding/hex"
	"fmt"
)

// Endpoint describes one regional deployment of the Dreo cloud: its HTTPS
// API base, its websocket base for push events, and the crypto parameters
// used to seal request and response payloads.
//
// Endpoints are immutable, process-wide configuration. They are looked up by
// region only and never mutated at runtime, so concurrent sessions can share
// the table without locking.
type Endpoint struct {
	BaseURL      string
	WebSocketURL string
	Crypto       CryptoParams
}

// Per-region payload key material, distributed with the vendor's app SDK.
// Regions run separate servers with separate keys.
const (
	keyHexNA = "6c9d1a3f58e2b7c4015f8ad62e93c7b18f40da25619eb3c8742a0f5d9c61e837"
	keyHexEU = "2b74f0c89d3e51a6c72f18b4065dce93a1874b2fd0c35e968417d6a30b5f92c4"
)

// endpointTable is the fixed region-to-endpoint mapping. Adding a region is
// a compile-time-checked change here plus a Region constant and code entry.
var endpointTable = map[Region]Endpoint{
	RegionNorthAmerica: {
		BaseURL:      "https://api-na.dreo-cloud.com",
		WebSocketURL: "wss://ws-na.dreo-cloud.com",
		Crypto:       mustCryptoParams(keyHexNA),
	},
	RegionEurope: {
		BaseURL:      "https://api-eu.dreo-cloud.com",
		WebSocketURL: "wss://ws-eu.dreo-cloud.com",
		Crypto:       mustCryptoParams(keyHexEU),
	},
}

// ResolveEndpoint returns the endpoint registered for a region. A region
// with no table entry fails with UnsupportedRegion; that indicates a defect
// (an enum value added without a registry entry), not user error.
func ResolveEndpoint(region Region) (Endpoint, error) {
	endpoint, ok := endpointTable[region]
	if !ok {
		return Endpoint{}, NewUnsupportedRegionError(
			fmt.Sprintf("region %s has no registered endpoint", region))
	}
	return endpoint, nil
}

// mustCryptoParams builds CryptoParams from a hex-encoded key, panicking on
// malformed table entries. Only used for the fixed endpoint table above.
func mustCryptoParams(keyHex string) CryptoParams {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		panic(fmt.Sprintf("dreocloud: invalid endpoint key material: %v", err))
	}
	params, err := NewCryptoParams(key)
	if err != nil {
		panic(fmt.Sprintf("dreocloud: invalid endpoint key material: %v", err))
	}
	return params
}
