package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "dreocloud") {
		t.Errorf("GetConfigDir() = %v, should contain 'dreocloud'", configDir)
	}

	if runtime.GOOS != "windows" {
		if !strings.Contains(configDir, ".config") && !strings.Contains(configDir, "dreocloud") {
			t.Errorf("Unix config dir unexpected: %v", configDir)
		}
	}
}

func TestGetConfigDir_HonorsXDGConfigHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME is not used on Windows")
	}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	want := filepath.Join(dir, "dreocloud")
	if configDir != want {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Preferences == nil {
		t.Error("NewRegistry().Preferences should not be nil")
	}
	if reg.Token() != "" {
		t.Errorf("NewRegistry().Token() = %v, want empty", reg.Token())
	}
}

func TestRegistrySetToken(t *testing.T) {
	reg := NewRegistry()
	reg.SetToken("abc123:EU")

	if reg.Token() != "abc123:EU" {
		t.Errorf("Token() = %v, want abc123:EU", reg.Token())
	}
	if reg.Credentials.SavedAt.IsZero() {
		t.Error("SetToken() should stamp SavedAt")
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on XDG_CONFIG_HOME")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	reg := NewRegistry()
	reg.SetToken("secret-token")
	reg.Preferences.DefaultDevice = "fan-1234"
	reg.Preferences.RequestTimeout = 15

	if err := reg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Bypass the sync.Once global and read straight from disk
	loaded, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error = %v", err)
	}

	if loaded.Token() != "secret-token" {
		t.Errorf("loaded Token() = %v, want secret-token", loaded.Token())
	}
	if loaded.Preferences.DefaultDevice != "fan-1234" {
		t.Errorf("loaded DefaultDevice = %v, want fan-1234", loaded.Preferences.DefaultDevice)
	}
	if loaded.Preferences.RequestTimeout != 15 {
		t.Errorf("loaded RequestTimeout = %v, want 15", loaded.Preferences.RequestTimeout)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on XDG_CONFIG_HOME")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	reg, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error = %v", err)
	}
	if reg.Version != 1 {
		t.Errorf("default registry Version = %v, want 1", reg.Version)
	}
}
