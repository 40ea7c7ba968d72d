package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewMetricsExposesRegistryAndServer(t *testing.T) {
	m := NewMetrics(Config{Address: ":0", ServiceName: "test"})
	if m.Registry == nil {
		t.Fatal("Registry is nil")
	}
	if m.Server == nil || m.Server.Handler == nil {
		t.Fatal("metrics server not configured")
	}

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) != 0 {
		t.Errorf("registry starts with %d metric families, want none", len(families))
	}
}

func TestCreateFactoriesRegister(t *testing.T) {
	m := NewMetrics(Config{Address: ":0", ServiceName: "test"})

	counter := m.CreateCounter("ops_total", "Total operations.", []string{"status"})
	counter.WithLabelValues("success").Inc()
	hist := m.CreateHistogram("op_seconds", "Operation latency.", []string{"op"}, prometheus.DefBuckets)
	hist.WithLabelValues("get").Observe(0.01)
	gauge := m.CreateGauge("records", "Record count.", []string{"table"})
	gauge.WithLabelValues("archival").Set(3)

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"ops_total", "op_seconds", "records"} {
		if !names[want] {
			t.Errorf("metric %q not registered", want)
		}
	}
}
