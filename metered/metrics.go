package metered

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

func newCounterMetric(namespace, name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

type metrics struct {
	chunksAllocated,
	chunksFreed,
	directoriesAllocated,
	allocationFailures prometheus.Counter

	liveChunks prometheus.Gauge
}

func (m *metrics) Initialize(
	namespace string,
	registerer prometheus.Registerer,
) error {
	m.chunksAllocated = newCounterMetric(namespace, "chunks_allocated", "# of chunks handed out")
	m.chunksFreed = newCounterMetric(namespace, "chunks_freed", "# of chunks taken back")
	m.directoriesAllocated = newCounterMetric(namespace, "directories_allocated", "# of directories handed out")
	m.allocationFailures = newCounterMetric(namespace, "allocation_failures", "# of chunk or directory allocations that failed")
	m.liveChunks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_chunks",
		Help:      "# of chunks currently handed out",
	})

	err := errors.Join(
		registerer.Register(m.chunksAllocated),
		registerer.Register(m.chunksFreed),
		registerer.Register(m.directoriesAllocated),
		registerer.Register(m.allocationFailures),
		registerer.Register(m.liveChunks),
	)
	if err != nil {
		return fmt.Errorf("registering %q metrics: %w", namespace, err)
	}
	return nil
}
