// Package telemetry exposes Prometheus metrics for the wM-Bus decode
// pipeline, grounded on the Collector pattern in
// dantte-lp-gobfd's internal/metrics/collector.go: a struct of exported
// metric fields, built and registered by NewCollector, with small
// intention-revealing increment methods.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "wmbusd"
	subsystem = "decode"
)

const labelStage = "stage"

// Collector holds every Prometheus metric the decode pipeline reports.
type Collector struct {
	// FramesDecoded counts telegrams that decoded without error.
	FramesDecoded prometheus.Counter

	// DecodeErrors counts failed decode attempts, labeled by the pipeline
	// stage that rejected the frame (parse, decrypt, record).
	DecodeErrors *prometheus.CounterVec

	// DecryptFailures counts mode-5 decryption failures specifically
	// (missing key or filler sentinel mismatch), broken out from the
	// general DecodeErrors total for alerting on key rotation issues.
	DecryptFailures prometheus.Counter

	// RecordsPerFrame observes how many data records a successfully
	// decoded frame carried.
	RecordsPerFrame prometheus.Histogram

	// MQTTMessagesReceived counts inbound MQTT messages ingested,
	// regardless of how many telegrams each one carried.
	MQTTMessagesReceived prometheus.Counter
}

// NewCollector builds and registers a Collector against reg. If reg is
// nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.FramesDecoded,
		c.DecodeErrors,
		c.DecryptFailures,
		c.RecordsPerFrame,
		c.MQTTMessagesReceived,
	)

	return c
}

func newMetrics() *Collector {
	return &Collector{
		FramesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_decoded_total",
			Help:      "Total wM-Bus telegrams decoded successfully.",
		}),

		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Total telegram decode failures, labeled by the stage that rejected the frame.",
		}, []string{labelStage}),

		DecryptFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decrypt_failures_total",
			Help:      "Total mode-5 decryption failures (missing key or filler sentinel mismatch).",
		}),

		RecordsPerFrame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "records_per_frame",
			Help:      "Number of data records decoded per successful frame.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),

		MQTTMessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mqtt",
			Name:      "messages_received_total",
			Help:      "Total MQTT ingest messages received.",
		}),
	}
}

// IncDecodeError increments the decode error counter for a given
// pipeline stage (e.g. "parse", "decrypt", "record").
func (c *Collector) IncDecodeError(stage string) {
	c.DecodeErrors.WithLabelValues(stage).Inc()
}
