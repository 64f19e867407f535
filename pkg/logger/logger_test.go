package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", false)

	log.Info().Str("post_id", "42").Msg("Post created")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["service"] != serviceName {
		t.Errorf("Expected service %q, got %v", serviceName, entry["service"])
	}
	if entry["message"] != "Post created" {
		t.Errorf("Expected message 'Post created', got %v", entry["message"])
	}
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %q", buf.String())
	}

	log.Warn().Msg("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("Expected warn message in output, got %q", buf.String())
	}
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "verbose", false)

	log.Debug().Msg("debug")
	log.Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, `"debug"`) && strings.Contains(out, `"message":"debug"`) {
		t.Errorf("Expected debug to be filtered, got %q", out)
	}
	if !strings.Contains(out, `"message":"info"`) {
		t.Errorf("Expected info message in output, got %q", out)
	}
}
