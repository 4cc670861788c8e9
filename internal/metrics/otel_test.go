package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabledReturnsPlainRecorder(t *testing.T) {
	rec, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if rec == nil {
		t.Fatal("expected recorder")
	}
	if rec.otel != nil {
		t.Fatal("disabled telemetry must not build otel instruments")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupEnabledMirrorsToOtel(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	origProm := promReaderFactory
	promReaderFactory = func() (sdkmetric.Reader, prometheus.Gatherer, error) {
		return reader, prometheus.NewRegistry(), nil
	}
	t.Cleanup(func() { promReaderFactory = origProm })

	rec, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: true, ServiceName: "test"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if rec.otel == nil {
		t.Fatal("expected otel instruments when enabled")
	}

	rec.RecordProviderAttempt("espn", 10*time.Millisecond, nil)
	rec.RecordDrop(DropZeroScore)
	rec.RecordRunOutcome("published", time.Second)

	if rec.ProviderCalls("espn") != 1 {
		t.Fatal("in-memory view must record alongside otel")
	}

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
