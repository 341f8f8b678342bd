package config

import "time"

// Registry represents the entire user configuration file. It stores the
// saved access token and application preferences for the CLI; the library
// itself never reads this file and takes the token per call.
type Registry struct {
	Version     int          `yaml:"version"`
	Credentials *Credentials `yaml:"credentials,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// Credentials holds the saved Dreo access token. The token is stored as
// supplied by the user, including any region suffix: the suffix is routing
// metadata the library needs, and the file itself is user-only (0600).
type Credentials struct {
	AccessToken string    `yaml:"access_token"`
	SavedAt     time.Time `yaml:"saved_at,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultDevice  string `yaml:"default_device,omitempty"`  // Device ID used when none is given
	RequestTimeout int    `yaml:"request_timeout,omitempty"` // Per-attempt timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Preferences: &Preferences{},
	}
}

// SetToken stores an access token, stamping the save time.
func (r *Registry) SetToken(token string) {
	r.Credentials = &Credentials{
		AccessToken: token,
		SavedAt:     time.Now(),
	}
}

// Token returns the saved access token, or empty if none is stored.
func (r *Registry) Token() string {
	if r.Credentials == nil {
		return ""
	}
	return r.Credentials.AccessToken
}
