package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestSetupExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(Config{Tracing: true, ServiceName: "circlecare-test", Writer: &buf})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "Ledger.CreateCircle")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Ledger.CreateCircle") {
		t.Errorf("expected exported span, got %q", out)
	}
	if !strings.Contains(out, "circlecare-test") {
		t.Errorf("expected service name in resource, got %q", out)
	}
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(Config{})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("expected no-op shutdown, got %v", err)
	}
}
