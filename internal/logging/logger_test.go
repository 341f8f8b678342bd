package logging

import (
	"strings"
	"testing"
)

func TestRedactToken_ShortTokensFullyRedacted(t *testing.T) {
	for _, token := range []string{"", "a", "abc12345"} {
		if got := RedactToken(token); got != "[redacted]" {
			t.Errorf("RedactToken(%q) = %q, want [redacted]", token, got)
		}
	}
}

func TestRedactToken_LongTokensKeepPrefixOnly(t *testing.T) {
	got := RedactToken("abc123def456")

	if !strings.HasPrefix(got, "abc1") {
		t.Errorf("RedactToken() = %q, want abc1 prefix", got)
	}
	if strings.Contains(got, "def456") {
		t.Errorf("RedactToken() = %q, leaks token material", got)
	}
}

func TestGetLogger_SilentWithoutInitialize(t *testing.T) {
	logger = nil

	l := GetLogger()
	if l == nil {
		t.Fatal("GetLogger() returned nil")
	}

	// Must not panic or emit anything on the nop logger
	Debug("test message")
	Info("test message")
}
