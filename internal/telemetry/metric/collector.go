package metric

import "github.com/prometheus/client_golang/prometheus"

// TreeCounter reports how many folders and files are shared.
type TreeCounter interface {
	Count() (folders, files int)
}

// TreeCollector exposes the size of the shared tree as a gauge.
// It reads the count on every scrape.
type TreeCollector struct {
	source TreeCounter
	nodes  *prometheus.Desc
}

// NewTreeCollector creates a collector reading from source.
func NewTreeCollector(source TreeCounter) *TreeCollector {
	return &TreeCollector{
		source: source,
		nodes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "snapshot_nodes"),
			"Nodes in the shared tree snapshot by kind",
			[]string{"kind"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *TreeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodes
}

// Collect implements prometheus.Collector.
func (c *TreeCollector) Collect(ch chan<- prometheus.Metric) {
	folders, files := c.source.Count()
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(folders), "folder")
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(files), "file")
}
