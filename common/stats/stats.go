package stats

import (
	"encoding/json"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rcrowley/go-metrics"
)

// StatsReceiver is the stats collection interface handed around the analysis
// packages. Scoped receivers share one underlying registry; instruments are
// created on first use.
type StatsReceiver interface {
	// Scope returns a receiver that prefixes all instrument names.
	Scope(scope ...string) StatsReceiver

	Counter(name ...string) Counter
	Gauge(name ...string) Gauge
	Latency(name ...string) Latency

	// Render dumps the current registry contents as JSON.
	Render() []byte
}

type Counter interface {
	Inc(int64)
	Count() int64
}

type Gauge interface {
	Update(int64)
}

// Latency measures elapsed wall time between Time() and Stop().
type Latency interface {
	Time() *StopWatch
}

// StopWatch records into its timer when stopped.
type StopWatch struct {
	start time.Time
	timer metrics.Timer
}

func (s *StopWatch) Stop() {
	s.timer.Update(time.Since(s.start))
}

// DefaultStatsReceiver returns a receiver over the shared default registry.
func DefaultStatsReceiver() StatsReceiver {
	return &defaultStatsReceiver{registry: metrics.DefaultRegistry}
}

// NewStatsReceiver returns a receiver over a private registry, for tests.
func NewStatsReceiver() StatsReceiver {
	return &defaultStatsReceiver{registry: metrics.NewRegistry()}
}

type defaultStatsReceiver struct {
	registry metrics.Registry
	scope    []string
}

func (s *defaultStatsReceiver) Scope(scope ...string) StatsReceiver {
	return &defaultStatsReceiver{registry: s.registry, scope: append(append([]string{}, s.scope...), scope...)}
}

func (s *defaultStatsReceiver) Counter(name ...string) Counter {
	return metrics.GetOrRegisterCounter(s.scopedName(name...), s.registry)
}

func (s *defaultStatsReceiver) Gauge(name ...string) Gauge {
	return metrics.GetOrRegisterGauge(s.scopedName(name...), s.registry)
}

func (s *defaultStatsReceiver) Latency(name ...string) Latency {
	return &latency{timer: metrics.GetOrRegisterTimer(s.scopedName(name...), s.registry)}
}

func (s *defaultStatsReceiver) Render() []byte {
	out, err := json.Marshal(s.registry)
	if err != nil {
		log.Errorf("Error rendering stats registry: %v", err)
		return []byte{}
	}
	return out
}

func (s *defaultStatsReceiver) scopedName(name ...string) string {
	return strings.Join(append(append([]string{}, s.scope...), name...), "/")
}

type latency struct {
	timer metrics.Timer
}

func (l *latency) Time() *StopWatch {
	return &StopWatch{start: time.Now(), timer: l.timer}
}

// NilStatsReceiver returns a no-op receiver.
func NilStatsReceiver() StatsReceiver {
	return &nilStatsReceiver{}
}

type nilStatsReceiver struct{}

func (s *nilStatsReceiver) Scope(scope ...string) StatsReceiver { return s }
func (s *nilStatsReceiver) Counter(name ...string) Counter      { return &nilCounter{} }
func (s *nilStatsReceiver) Gauge(name ...string) Gauge          { return &nilGauge{} }
func (s *nilStatsReceiver) Latency(name ...string) Latency      { return &nilLatency{} }
func (s *nilStatsReceiver) Render() []byte                      { return []byte{} }

type nilCounter struct{}

func (c *nilCounter) Inc(int64)   {}
func (c *nilCounter) Count() int64 { return 0 }

type nilGauge struct{}

func (g *nilGauge) Update(int64) {}

type nilLatency struct{}

func (l *nilLatency) Time() *StopWatch { return &StopWatch{start: time.Now(), timer: metrics.NilTimer{}} }
