// Package metric provides Prometheus metrics for FolderShare.
//
//   - prometheus.go: the registry, its RPC and transfer metrics, and the
//     HTTP handler
//   - collector.go: a collector reporting the size of the shared tree
//
// Every recording method is safe on a nil *Registry so components can
// run without metrics.
package metric
