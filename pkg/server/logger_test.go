package server

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRequestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewRequestLogHandler(slog.NewTextHandler(&buf, nil))).With("component", "test")

	logger.InfoContext(WithRequestID(context.Background(), "req-1"), "with id")
	logger.InfoContext(context.Background(), "without id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "request_id=req-1") || !strings.Contains(lines[0], "component=test") {
		t.Errorf("first line = %q", lines[0])
	}
	if strings.Contains(lines[1], "request_id") {
		t.Errorf("second line = %q, want no request_id", lines[1])
	}
}
