package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/andreyxaxa/Media-Service/internal/infrastructure"
	"github.com/prometheus/client_golang/prometheus"
)

const _defaultNamespace = "media"

// PrometheusObserver exports upload and derivation metrics.
type PrometheusObserver struct {
	namespace string
	reg       prometheus.Registerer

	uploads            *prometheus.CounterVec
	uploadBytes        prometheus.Counter
	derivationDuration *prometheus.HistogramVec
	dropped            prometheus.Counter
}

var _ infrastructure.Observer = (*PrometheusObserver)(nil)

func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = _defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PrometheusObserver{
		namespace: namespace,
		reg:       reg,

		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Upload requests by outcome.",
		}, []string{"outcome"}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_bytes_total",
			Help:      "Bytes of accepted originals written to object storage.",
		}),
		derivationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "derivation_duration_seconds",
			Help:      "Duration of thumbnail and WebP derivation by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derivations_dropped_total",
			Help:      "Derivation tasks not scheduled because the queue was full or closed.",
		}),
	}

	var err error
	if o.uploads, err = register(reg, o.uploads); err != nil {
		return nil, err
	}
	if o.uploadBytes, err = register(reg, o.uploadBytes); err != nil {
		return nil, err
	}
	if o.derivationDuration, err = register(reg, o.derivationDuration); err != nil {
		return nil, err
	}
	if o.dropped, err = register(reg, o.dropped); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *PrometheusObserver) RecordUpload(outcome string, sizeBytes int64) {
	o.uploads.WithLabelValues(outcome).Inc()
	if outcome == infrastructure.OutcomeAccepted {
		o.uploadBytes.Add(float64(sizeBytes))
	}
}

func (o *PrometheusObserver) RecordDerivation(duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	o.derivationDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (o *PrometheusObserver) RecordDropped() {
	o.dropped.Inc()
}

// RegisterQueueDepth exports depth as a gauge read on every scrape.
func (o *PrometheusObserver) RegisterQueueDepth(depth func() int) error {
	_, err := register(o.reg, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: o.namespace,
		Name:      "derivation_queue_depth",
		Help:      "Derivation tasks waiting for a worker.",
	}, func() float64 {
		return float64(depth())
	}))

	return err
}

// register returns the already registered collector when one with the same
// descriptor exists, so observers can be built more than once per registry.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("metrics - register - reg.Register: %w", err)
}
