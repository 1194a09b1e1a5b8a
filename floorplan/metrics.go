package floorplan

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// SearchStats counts move attempts, Metropolis acceptances, and SA
// restarts across all workers of a search. The counters sit on the SA hot
// path, so they are plain atomics; nothing here takes a lock.
type SearchStats struct {
	movesTotal    atomic.Int64
	movesAccepted atomic.Int64
	saRuns        atomic.Int64
}

// MoveAttempted records one candidate evaluation.
func (s *SearchStats) MoveAttempted() { s.movesTotal.Add(1) }

// MoveAccepted records one Metropolis acceptance.
func (s *SearchStats) MoveAccepted() { s.movesAccepted.Add(1) }

// RunStarted records one SA restart.
func (s *SearchStats) RunStarted() { s.saRuns.Add(1) }

// setRuns overwrites the restart count; parallel tempering counts one run
// per replica rather than per restart.
func (s *SearchStats) setRuns(n int64) { s.saRuns.Store(n) }

// MovesTotal returns the number of candidate evaluations so far.
func (s *SearchStats) MovesTotal() int64 { return s.movesTotal.Load() }

// MovesAccepted returns the number of accepted moves so far.
func (s *SearchStats) MovesAccepted() int64 { return s.movesAccepted.Load() }

// SARuns returns the number of SA runs started so far.
func (s *SearchStats) SARuns() int64 { return s.saRuns.Load() }

// AcceptRatio returns accepted/total, or 0 before the first move.
func (s *SearchStats) AcceptRatio() float64 {
	total := s.MovesTotal()
	if total == 0 {
		return 0
	}
	return float64(s.MovesAccepted()) / float64(total)
}

// NewMetricsRegistry builds a Prometheus registry over a live Searcher.
// The collectors read the searcher's atomic counters and guarded best on
// scrape, so registering them adds no work to the SA inner loop.
func NewMetricsRegistry(s *Searcher) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	stats := s.Stats()
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "floorplan_moves_total",
			Help: "Candidate solutions evaluated across all workers.",
		}, func() float64 { return float64(stats.MovesTotal()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "floorplan_moves_accepted_total",
			Help: "Candidates accepted by the Metropolis test.",
		}, func() float64 { return float64(stats.MovesAccepted()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "floorplan_sa_runs_total",
			Help: "Simulated-annealing runs started.",
		}, func() float64 { return float64(stats.SARuns()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "floorplan_best_cost",
			Help: "Cost of the best solution found so far (1e18 until the first).",
		}, s.BestCost),
	)
	return reg
}

// ServeMetrics exposes the registry at /metrics on addr in a background
// goroutine. Listener failures are logged, not fatal; the search does not
// depend on the scrape endpoint.
func ServeMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Warnf("metrics listener on %s failed: %v", addr, err)
		}
	}()
}
