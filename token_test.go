package dreocloud

import (
	"strings"
	"testing"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name       string
		rawToken   string
		wantRegion Region
		wantClean  string
		wantErr    bool
	}{
		{"no suffix defaults to NA", "abc123", RegionNorthAmerica, "abc123", false},
		{"EU suffix", "abc123:EU", RegionEurope, "abc123", false},
		{"lowercase eu suffix", "abc123:eu", RegionEurope, "abc123", false},
		{"mixed case suffix", "abc123:Eu", RegionEurope, "abc123", false},
		{"NA suffix", "abc123:NA", RegionNorthAmerica, "abc123", false},
		{"lowercase na suffix", "abc123:na", RegionNorthAmerica, "abc123", false},
		{"secret containing delimiter", "abc:123:EU", RegionEurope, "abc:123", false},
		{"unrecognized suffix", "abc123:XX", 0, "", true},
		{"empty suffix", "abc123:", 0, "", true},
		{"empty secret", ":EU", 0, "", true},
		{"empty token", "", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, clean, err := ParseToken(tt.rawToken)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseToken(%q) error = nil, want error", tt.rawToken)
				}
				if !IsInvalidTokenFormat(err) {
					t.Errorf("ParseToken(%q) error = %v, want InvalidTokenFormat", tt.rawToken, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseToken(%q) error = %v", tt.rawToken, err)
			}
			if region != tt.wantRegion {
				t.Errorf("region = %v, want %v", region, tt.wantRegion)
			}
			if clean != tt.wantClean {
				t.Errorf("clean = %q, want %q", clean, tt.wantClean)
			}
		})
	}
}

func TestParseToken_CleanNeverContainsRegionCode(t *testing.T) {
	for _, raw := range []string{"secret:EU", "secret:eu", "secret:NA", "secret"} {
		_, clean, err := ParseToken(raw)
		if err != nil {
			t.Fatalf("ParseToken(%q) error = %v", raw, err)
		}
		if strings.Contains(clean, regionDelimiter) {
			t.Errorf("clean token %q contains delimiter", clean)
		}
	}
}

func TestCleanToken(t *testing.T) {
	tests := []struct {
		rawToken string
		want     string
	}{
		{"abc123", "abc123"},
		{"abc123:EU", "abc123"},
		{"abc123:eu", "abc123"},
		{"abc123:NA", "abc123"},
		{"abc123:XX", "abc123"}, // stripping is unconditional - no error path
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanToken(tt.rawToken); got != tt.want {
			t.Errorf("CleanToken(%q) = %q, want %q", tt.rawToken, got, tt.want)
		}
	}
}

func TestCleanToken_Idempotent(t *testing.T) {
	for _, raw := range []string{"abc123", "abc123:EU", "abc123:XX", "", "abc123:"} {
		once := CleanToken(raw)
		twice := CleanToken(once)
		if once != twice {
			t.Errorf("CleanToken not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestCleanToken_StripsDelimiter(t *testing.T) {
	for _, raw := range []string{"abc123:EU", "abc123:XX", "abc123:", ":EU"} {
		if got := CleanToken(raw); strings.Contains(got, regionDelimiter) {
			t.Errorf("CleanToken(%q) = %q, still contains delimiter", raw, got)
		}
	}
}

func TestRegionString(t *testing.T) {
	if RegionNorthAmerica.String() != "NA" {
		t.Errorf("RegionNorthAmerica.String() = %v, want NA", RegionNorthAmerica)
	}
	if RegionEurope.String() != "EU" {
		t.Errorf("RegionEurope.String() = %v, want EU", RegionEurope)
	}
	if got := Region(99).String(); got != "Region(99)" {
		t.Errorf("Region(99).String() = %v, want Region(99)", got)
	}
}
