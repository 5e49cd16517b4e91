package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/heysubinoy/kvs/pkg/config"
)

func TestNewWithOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOutput(&config.Config{LogLevel: "debug", LogFormat: "json"}, &buf)
	if err != nil {
		t.Fatalf("NewWithOutput: %v", err)
	}

	log.WithField("op", "set").Debug("applied")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %q", buf.String())
	}
	if entry["op"] != "set" || entry["msg"] != "applied" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewWithOutputLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOutput(&config.Config{LogLevel: "warn", LogFormat: "text"}, &buf)
	if err != nil {
		t.Fatalf("NewWithOutput: %v", err)
	}
	if log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("Expected warn level got %v", log.GetLevel())
	}

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("level filtering wrong: %q", out)
	}
}

func TestNewWithOutputBadLevel(t *testing.T) {
	if _, err := NewWithOutput(&config.Config{LogLevel: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("Expected an error for an unknown level")
	}
}
