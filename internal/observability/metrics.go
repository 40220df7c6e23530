package observability

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hydrosignals/econet-linker/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineCollector bundles Prometheus metrics for the shard evaluation
// pipeline and provides helpers to wire them into HTTP handlers.
type PipelineCollector struct {
	gatherer prometheus.Gatherer

	ShardRowsDecoded  prometheus.Counter
	ShardLoadFailures *prometheus.CounterVec
	ShardLoadDuration prometheus.Histogram

	Evaluations *prometheus.CounterVec

	RegistryNodes        prometheus.Gauge
	RegistryContaminants prometheus.Gauge
}

// NewPipelineCollector registers pipeline Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewPipelineCollector(reg prometheus.Registerer) (*PipelineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shard_rows_decoded_total",
		Help: "Total number of shard rows decoded into node metadata.",
	})
	rows, err := registerCounter(reg, rows, "shard_rows_decoded_total")
	if err != nil {
		return nil, err
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shard_load_failures_total",
		Help: "Total number of failed shard loads, labeled by failure stage (access or decode).",
	}, []string{"stage"})
	failures, err = registerCounterVec(reg, failures, "shard_load_failures_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shard_load_duration_seconds",
		Help:    "Wall time spent loading and binding one shard.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})
	duration, err = registerHistogram(reg, duration, "shard_load_duration_seconds")
	if err != nil {
		return nil, err
	}

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "node_evaluations_total",
		Help: "Total number of node impact evaluations, labeled by mode (fixed or series).",
	}, []string{"mode"})
	evaluations, err = registerCounterVec(reg, evaluations, "node_evaluations_total")
	if err != nil {
		return nil, err
	}

	nodes, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registry_nodes",
		Help: "Current number of node configurations in the registry.",
	}), "registry_nodes")
	if err != nil {
		return nil, err
	}
	contaminants, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registry_contaminants",
		Help: "Current number of contaminant configurations in the registry.",
	}), "registry_contaminants")
	if err != nil {
		return nil, err
	}

	return &PipelineCollector{
		gatherer:             gatherer,
		ShardRowsDecoded:     rows,
		ShardLoadFailures:    failures,
		ShardLoadDuration:    duration,
		Evaluations:          evaluations,
		RegistryNodes:        nodes,
		RegistryContaminants: contaminants,
	}, nil
}

// ObserveShardLoad records the outcome of one shard load: its duration,
// the number of rows decoded on success, or the failure stage on error.
func (c *PipelineCollector) ObserveShardLoad(elapsed time.Duration, rows int, err error) {
	if c == nil {
		return
	}
	if c.ShardLoadDuration != nil {
		c.ShardLoadDuration.Observe(elapsed.Seconds())
	}
	if err != nil {
		if c.ShardLoadFailures != nil {
			c.ShardLoadFailures.WithLabelValues(loadFailureStage(err)).Inc()
		}
		return
	}
	if c.ShardRowsDecoded != nil {
		c.ShardRowsDecoded.Add(float64(rows))
	}
}

// RecordEvaluations counts n completed node evaluations for a mode.
func (c *PipelineCollector) RecordEvaluations(mode string, n int) {
	if c == nil || c.Evaluations == nil {
		return
	}
	c.Evaluations.WithLabelValues(mode).Add(float64(n))
}

// SetRegistryCounts satisfies the registry-watcher wiring so gauge values
// can be driven directly from kb.Registry mutations.
func (c *PipelineCollector) SetRegistryCounts(nodes, contaminants int) {
	if c == nil {
		return
	}
	if c.RegistryNodes != nil {
		c.RegistryNodes.Set(float64(nodes))
	}
	if c.RegistryContaminants != nil {
		c.RegistryContaminants.Set(float64(contaminants))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PipelineCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// loadFailureStage classifies a shard load error into its metric label.
func loadFailureStage(err error) string {
	var ae *core.AccessError
	if errors.As(err, &ae) {
		return "access"
	}
	var de *core.DecodeError
	if errors.As(err, &de) {
		return "decode"
	}
	return "other"
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, histogram prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(histogram); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return histogram, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
