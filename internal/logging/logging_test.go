package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "debug", "json", "run-1")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Str("topic", "economia").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["run_id"] != "run-1" {
		t.Errorf("run_id = %v, want run-1", entry["run_id"])
	}
	if entry["topic"] != "economia" || entry["message"] != "hello" {
		t.Errorf("entry = %v", entry)
	}
}

func TestSetup_LevelFallback(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "loud", "json", "")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Fatalf("GlobalLevel() = %v, want info", got)
	}
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "info", "console", "")

	log.Info().Msg("rendered page")

	if !strings.Contains(buf.String(), "rendered page") {
		t.Errorf("console output = %q", buf.String())
	}
}
