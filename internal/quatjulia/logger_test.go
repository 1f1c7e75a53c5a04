package quatjulia

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDebugLogFollowsDebugFlag(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)
	defer func(d bool) { Debug = d }(Debug)

	Debug = false
	DebugLog("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("logged with Debug off: %q", buf.String())
	}
	Debug = true
	DebugLog("shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Fatalf("missing debug line: %q", buf.String())
	}
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger must discard everything")
	}
}
