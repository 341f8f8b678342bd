package dreocloud

import "time"

// DeviceStatus is the decrypted state of one device at one point in time.
// The caller owns the returned value; the session keeps its own copy in the
// status cache.
type DeviceStatus struct {
	DeviceID   string
	Attributes map[string]any
	Timestamp  time.Time
}

// clone returns an independent copy so cache reads cannot alias the stored
// attribute map.
func (s *DeviceStatus) clone() *DeviceStatus {
	attrs := make(map[string]any, len(s.Attributes))
	for k, v := range s.Attributes {
		attrs[k] = v
	}
	return &DeviceStatus{
		DeviceID:   s.DeviceID,
		Attributes: attrs,
		Timestamp:  s.Timestamp,
	}
}

// Plaintext request envelope, encrypted before dispatch. A status read
// carries no params; an update carries the attributes to change.
type statusRequest struct {
	DeviceID  string         `json:"deviceId"`
	Method    string         `json:"method"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// Plaintext response envelope, produced by decrypting the server reply.
// The server reports device state under "mixed".
type statusResponse struct {
	DeviceID  string         `json:"deviceId"`
	Mixed     map[string]any `json:"mixed"`
	Timestamp int64          `json:"timestamp"`
}

const (
	methodQuery  = "status"
	methodUpdate = "update"
)
