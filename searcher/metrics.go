package searcher

import (
	"sync/atomic"
	"time"
)

// MoveMetrics summarizes one FindAction call across all of its trees.
type MoveMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Playouts   int64
	Nodes      int64
	MaxDepth   int64
	TreeReused bool
}

type MetricsCollector interface {
	Start()
	AddPlayout()
	AddTree(nodes, maxDepth int)
	ReusedTree()
	Complete() MoveMetrics
}

type metricsCollector struct {
	startTime  time.Time
	playouts   atomic.Int64
	nodes      atomic.Int64
	maxDepth   atomic.Int64
	treeReused atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.playouts.Store(0)
	m.nodes.Store(0)
	m.maxDepth.Store(0)
	m.treeReused.Store(false)
}

func (m *metricsCollector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *metricsCollector) AddTree(nodes, maxDepth int) {
	m.nodes.Add(int64(nodes))
	for {
		cur := m.maxDepth.Load()
		if int64(maxDepth) <= cur || m.maxDepth.CompareAndSwap(cur, int64(maxDepth)) {
			return
		}
	}
}

func (m *metricsCollector) ReusedTree() {
	m.treeReused.Store(true)
}

func (m *metricsCollector) Complete() MoveMetrics {
	return MoveMetrics{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Playouts:   m.playouts.Load(),
		Nodes:      m.nodes.Load(),
		MaxDepth:   m.maxDepth.Load(),
		TreeReused: m.treeReused.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                {}
func (m *noMetricsCollector) AddPlayout()           {}
func (m *noMetricsCollector) AddTree(_, _ int)      {}
func (m *noMetricsCollector) ReusedTree()           {}
func (m *noMetricsCollector) Complete() MoveMetrics { return MoveMetrics{} }
