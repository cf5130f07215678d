package metrics

import (
	"time"

	"github.com/creastat/logmerge"
	"github.com/prometheus/client_golang/prometheus"
)

// PromObserver implements the engine's Observer port with Prometheus
// collectors.
type PromObserver struct {
	emitted   prometheus.Counter
	exhausted *prometheus.CounterVec
	occupancy prometheus.Gauge
	fetchLat  *prometheus.HistogramVec
}

// NewPromObserver creates the collectors and registers them with reg.
func NewPromObserver(reg prometheus.Registerer) *PromObserver {
	p := &PromObserver{
		emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logmerge_entries_emitted_total",
			Help: "Total entries emitted to the sink in merged order.",
		}),
		exhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logmerge_sources_exhausted_total",
			Help: "Sources fully drained by the merge.",
		}, []string{"source"}),
		occupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logmerge_buffer_occupancy",
			Help: "Read-ahead budget slots currently held by source buffers.",
		}),
		fetchLat: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "logmerge_fetch_duration_seconds",
			Help:    "Latency of individual source fetches.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"source"}),
	}

	reg.MustRegister(p.emitted, p.exhausted, p.occupancy, p.fetchLat)
	return p
}

func (p *PromObserver) EntryEmitted() {
	p.emitted.Inc()
}

func (p *PromObserver) SourceExhausted(source string) {
	p.exhausted.WithLabelValues(source).Inc()
}

func (p *PromObserver) FetchObserved(source string, elapsed time.Duration) {
	p.fetchLat.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (p *PromObserver) BufferOccupancy(buffered int) {
	p.occupancy.Set(float64(buffered))
}

var _ logmerge.Observer = (*PromObserver)(nil)
