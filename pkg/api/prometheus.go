package api

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusObserver exports chain and node outcomes as Prometheus metrics
// under the catena_ namespace.
type PrometheusObserver struct {
	NoopObserver

	chainsStarted   prometheus.Counter
	chainsCompleted prometheus.Counter
	chainsEscalated prometheus.Counter
	nodeDuration    *prometheus.HistogramVec
	nodeFailures    *prometheus.CounterVec
}

// NewPrometheusObserver registers catena metrics with reg and returns the
// observer. A nil reg uses the default registerer. Registering twice on the
// same registerer panics, per the usual promauto contract.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusObserver{
		chainsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "catena",
			Name:      "chains_started_total",
			Help:      "Chains started via Execute.",
		}),
		chainsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "catena",
			Name:      "chains_completed_total",
			Help:      "Chains that completed, including swallowed failures.",
		}),
		chainsEscalated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "catena",
			Name:      "chains_escalated_total",
			Help:      "Chains that returned an escalated error.",
		}),
		nodeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catena",
			Name:      "node_duration_seconds",
			Help:      "Handler duration per node, successful runs only.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"node"}),
		nodeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catena",
			Name:      "node_failures_total",
			Help:      "Handler failures per node, before containment.",
		}, []string{"node"}),
	}
}

func (p *PrometheusObserver) OnChainStart(context.Context, *Execution) {
	p.chainsStarted.Inc()
}

func (p *PrometheusObserver) OnChainCompleted(context.Context, *Execution) {
	p.chainsCompleted.Inc()
}

func (p *PrometheusObserver) OnChainEscalated(context.Context, *Execution, error) {
	p.chainsEscalated.Inc()
}

func (p *PrometheusObserver) OnNodeCompleted(_ context.Context, _ *Execution, node string, err error, d time.Duration) {
	if err != nil {
		p.nodeFailures.WithLabelValues(node).Inc()
		return
	}
	p.nodeDuration.WithLabelValues(node).Observe(d.Seconds())
}
