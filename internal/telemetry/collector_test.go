package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewCollectorRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c.FramesDecoded == nil {
		t.Error("FramesDecoded is nil")
	}
	if c.DecodeErrors == nil {
		t.Error("DecodeErrors is nil")
	}
	if c.DecryptFailures == nil {
		t.Error("DecryptFailures is nil")
	}
	if c.RecordsPerFrame == nil {
		t.Error("RecordsPerFrame is nil")
	}
	if c.MQTTMessagesReceived == nil {
		t.Error("MQTTMessagesReceived is nil")
	}

	if _, err := reg.Gather(); err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
}

func TestIncDecodeErrorLabelsByStage(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.IncDecodeError("decrypt")
	c.IncDecodeError("decrypt")
	c.IncDecodeError("parse")

	if got := counterValue(t, c.DecodeErrors, "decrypt"); got != 2 {
		t.Errorf("DecodeErrors{stage=decrypt} = %v, want 2", got)
	}
	if got := counterValue(t, c.DecodeErrors, "parse"); got != 1 {
		t.Errorf("DecodeErrors{stage=parse} = %v, want 1", got)
	}
	if got := counterValue(t, c.DecodeErrors, "record"); got != 0 {
		t.Errorf("DecodeErrors{stage=record} = %v, want 0", got)
	}
}

func TestFramesDecodedCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.FramesDecoded.Inc()
	c.FramesDecoded.Inc()
	c.FramesDecoded.Inc()

	m := &dto.Metric{}
	if err := c.FramesDecoded.Write(m); err != nil {
		t.Fatalf("Write metric: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 3 {
		t.Errorf("FramesDecoded = %v, want 3", got)
	}
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()

	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}

	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		t.Fatalf("Write metric: %v", err)
	}

	return m.GetCounter().GetValue()
}
