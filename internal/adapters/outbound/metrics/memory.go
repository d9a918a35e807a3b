// Package metrics provides an in-memory domain.MetricsSink. The sink is
// injected everywhere it is needed, so nothing in the pipeline touches
// process-wide state.
package metrics

import "sync"

// MemorySink counts increments and collects observations, safe for
// concurrent use.
type MemorySink struct {
	mu       sync.Mutex
	counters map[string]int
	observed map[string][]float64
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		counters: make(map[string]int),
		observed: make(map[string][]float64),
	}
}

func (m *MemorySink) Incr(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

func (m *MemorySink) Observe(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observed[name] = append(m.observed[name], value)
}

// Count returns the current value of a counter.
func (m *MemorySink) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Observations returns a copy of the recorded values for name.
func (m *MemorySink) Observations(name string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.observed[name]))
	copy(out, m.observed[name])
	return out
}
