package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromHooks exports layout, operator and cache events as Prometheus metrics.
type PromHooks struct {
	decodeSeconds *prometheus.HistogramVec
	packings      *prometheus.CounterVec
	alignments    *prometheus.CounterVec
	operations    *prometheus.CounterVec
	reverts       *prometheus.CounterVec
	best          *prometheus.CounterVec
	cache         *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
}

// NewPromHooks registers the corblivar metrics with reg.
func NewPromHooks(reg prometheus.Registerer) *PromHooks {
	f := promauto.With(reg)
	return &PromHooks{
		decodeSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "corblivar",
			Name:      "decode_duration_seconds",
			Help:      "Duration of CBL decode passes per die.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"layer"}),
		packings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corblivar",
			Name:      "packings_total",
			Help:      "Compaction passes per die and direction.",
		}, []string{"layer", "dir"}),
		alignments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corblivar",
			Name:      "alignment_evaluations_total",
			Help:      "Alignment request evaluations by outcome.",
		}, []string{"fulfilled"}),
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corblivar",
			Name:      "operations_total",
			Help:      "Neighborhood operators attempted, by kind and outcome.",
		}, []string{"op", "guided", "applied"}),
		reverts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corblivar",
			Name:      "reverts_total",
			Help:      "Reverted neighborhood operators by kind.",
		}, []string{"op"}),
		best: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corblivar",
			Name:      "best_snapshot_total",
			Help:      "Best snapshot stores and applies by outcome.",
		}, []string{"action", "ok"}),
		cache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corblivar",
			Name:      "cache_requests_total",
			Help:      "Cache lookups and writes by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corblivar",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
	}
}

func (p *PromHooks) OnDecode(layer, blocks int, d time.Duration) {
	p.decodeSeconds.WithLabelValues(strconv.Itoa(layer)).Observe(d.Seconds())
}

func (p *PromHooks) OnPacking(layer int, dir string) {
	p.packings.WithLabelValues(strconv.Itoa(layer), dir).Inc()
}

func (p *PromHooks) OnAlignment(requestID int, fulfilled bool) {
	p.alignments.WithLabelValues(strconv.FormatBool(fulfilled)).Inc()
}

func (p *PromHooks) OnOperation(op string, guided, applied bool) {
	p.operations.WithLabelValues(op, strconv.FormatBool(guided), strconv.FormatBool(applied)).Inc()
}

func (p *PromHooks) OnRevert(op string) {
	p.reverts.WithLabelValues(op).Inc()
}

func (p *PromHooks) OnBest(stored, ok bool) {
	action := "apply"
	if stored {
		action = "store"
	}
	p.best.WithLabelValues(action, strconv.FormatBool(ok)).Inc()
}

func (p *PromHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cache.WithLabelValues(keyType, "hit").Inc()
}

func (p *PromHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cache.WithLabelValues(keyType, "miss").Inc()
}

func (p *PromHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cache.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ LayoutHooks   = (*PromHooks)(nil)
	_ OperatorHooks = (*PromHooks)(nil)
	_ CacheHooks    = (*PromHooks)(nil)
)
