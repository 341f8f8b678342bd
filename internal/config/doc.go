// Package config manages the persistent user configuration for the
// dreoctl CLI.
//
// Configuration lives in a YAML file in the platform config directory
// ($XDG_CONFIG_HOME/dreocloud/config.yaml on Linux) and stores the saved
// access token plus CLI preferences. The library itself never reads this
// file: every library call takes the token explicitly.
//
// Writes are atomic (temp file + rename) and user-only (0600), since the
// file holds credential material.
package config
