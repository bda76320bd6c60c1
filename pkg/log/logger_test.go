package log

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" {
		t.Errorf("LevelWarn.String() = %q", LevelWarn.String())
	}
	if Level(99).String() != "UNKNOWN" {
		t.Errorf("Level(99).String() = %q", Level(99).String())
	}
}

func TestTestLoggerCapturesFields(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	logger.Info("Loaded feature table",
		OperationKey, "load",
		SamplesKey, 100,
	)

	if !logger.ContainsMessage("Loaded feature table") {
		t.Error("message not captured")
	}
	if !logger.ContainsField(OperationKey, "load") {
		t.Error("operation field not captured")
	}
	if !logger.ContainsField(SamplesKey, 100) {
		t.Error("samples field not captured")
	}
}

func TestTestLoggerRespectsLevel(t *testing.T) {
	logger, _ := NewTestLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	if logger.ContainsMessage("hidden") || logger.ContainsMessage("hidden too") {
		t.Error("sub-threshold messages were captured")
	}
	if !logger.ContainsMessage("visible") {
		t.Error("warn message missing")
	}
	if logger.Enabled(context.Background(), LevelInfo) {
		t.Error("Enabled(info) should be false at warn level")
	}
}

func TestTestLoggerWithCarriesContext(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)

	child := logger.With(MethodKey, "Relief")
	child.Info("Running feature selection")

	if !logger.ContainsField(MethodKey, "Relief") {
		t.Error("child logger field not carried into entries")
	}
}

func TestZerologProviderEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelDebug)
	defer func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	}()

	logger := GetLoggerWithName("dataset")
	logger.Info("Masked held-out fold", ReplicateKey, 3)

	out := buf.String()
	if !strings.Contains(out, "Masked held-out fold") {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"cv.replicate":3`) {
		t.Errorf("output missing replicate field: %s", out)
	}
}
