package fdcore

import "github.com/prometheus/client_golang/prometheus"

// metrics.go exposes SolverStats as a prometheus.Collector, additive to
// (not a replacement for) the lock-free atomic counters themselves: a
// host process can register a Model's collector to scrape search
// progress while the atomic counters remain the cheap in-process read
// path (cmd/fdcore bench reads Snapshot() directly rather than scraping
// its own metrics).
type statsCollector struct {
	model *Model

	nodes    *prometheus.Desc
	backtr   *prometheus.Desc
	restarts *prometheus.Desc
	sols     *prometheus.Desc
	propCnt  *prometheus.Desc
	maxDepth *prometheus.Desc
}

// MetricsCollector returns a prometheus.Collector reporting this model's
// SolverStats. Registering the same Model's collector twice will be
// rejected by the registry, matching normal prometheus semantics.
func (m *Model) MetricsCollector() prometheus.Collector {
	ns := "fdcore"
	return &statsCollector{
		model:    m,
		nodes:    prometheus.NewDesc(ns+"_nodes_explored_total", "Search nodes explored.", nil, nil),
		backtr:   prometheus.NewDesc(ns+"_backtracks_total", "Backtracks performed.", nil, nil),
		restarts: prometheus.NewDesc(ns+"_restarts_total", "Restarts performed.", nil, nil),
		sols:     prometheus.NewDesc(ns+"_solutions_found_total", "Solutions recorded.", nil, nil),
		propCnt:  prometheus.NewDesc(ns+"_propagations_total", "Propagator executions.", nil, nil),
		maxDepth: prometheus.NewDesc(ns+"_max_depth", "Deepest search node reached so far.", nil, nil),
	}
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodes
	ch <- c.backtr
	ch <- c.restarts
	ch <- c.sols
	ch <- c.propCnt
	ch <- c.maxDepth
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.model.stats.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.CounterValue, float64(snap.NodesExplored))
	ch <- prometheus.MustNewConstMetric(c.backtr, prometheus.CounterValue, float64(snap.Backtracks))
	ch <- prometheus.MustNewConstMetric(c.restarts, prometheus.CounterValue, float64(snap.Restarts))
	ch <- prometheus.MustNewConstMetric(c.sols, prometheus.CounterValue, float64(snap.SolutionsFound))
	ch <- prometheus.MustNewConstMetric(c.propCnt, prometheus.CounterValue, float64(snap.PropagationCount))
	ch <- prometheus.MustNewConstMetric(c.maxDepth, prometheus.GaugeValue, float64(snap.MaxDepth))
}
