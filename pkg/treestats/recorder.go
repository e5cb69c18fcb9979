// Package treestats publishes a tree's arena occupancy as Prometheus
// gauges, the way the wider stack wraps its own runtime counters in a
// small Metrics type built on promauto.
package treestats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot is the subset of bptree.TreeStats the recorder needs. It is
// a plain struct rather than an import of pkg/bptree so this package
// stays usable against any tree implementation shaped the same way.
type Snapshot struct {
	Len                         int
	LeafCount                   int
	LeafAllocated, LeafFree     int
	BranchAllocated, BranchFree int
}

// Recorder holds the Prometheus gauges describing one tree's current
// shape and occupancy.
type Recorder struct {
	entries         prometheus.Gauge
	leaves          prometheus.Gauge
	leafAllocated   prometheus.Gauge
	leafFree        prometheus.Gauge
	branchAllocated prometheus.Gauge
	branchFree      prometheus.Gauge
}

// NewRecorder creates and registers the gauges for one tree instance,
// labeled by name (e.g. the tree's role in the calling program).
func NewRecorder(namespace, name string) *Recorder {
	labels := prometheus.Labels{"tree": name}
	return &Recorder{
		entries: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "entries_total",
			Help:        "Number of key/value pairs currently stored.",
			ConstLabels: labels,
		}),
		leaves: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "leaves_total",
			Help:        "Number of leaves reachable from the root.",
			ConstLabels: labels,
		}),
		leafAllocated: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "leaf_arena_allocated",
			Help:        "Occupied slots in the leaf arena.",
			ConstLabels: labels,
		}),
		leafFree: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "leaf_arena_free",
			Help:        "Free slots in the leaf arena awaiting reuse.",
			ConstLabels: labels,
		}),
		branchAllocated: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "branch_arena_allocated",
			Help:        "Occupied slots in the branch arena.",
			ConstLabels: labels,
		}),
		branchFree: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "branch_arena_free",
			Help:        "Free slots in the branch arena awaiting reuse.",
			ConstLabels: labels,
		}),
	}
}

// Record pushes snap's values onto the recorder's gauges. Callers
// invoke this after a batch of mutations, not on every single
// operation, since each call touches six gauges.
func (r *Recorder) Record(snap Snapshot) {
	r.entries.Set(float64(snap.Len))
	r.leaves.Set(float64(snap.LeafCount))
	r.leafAllocated.Set(float64(snap.LeafAllocated))
	r.leafFree.Set(float64(snap.LeafFree))
	r.branchAllocated.Set(float64(snap.BranchAllocated))
	r.branchFree.Set(float64(snap.BranchFree))
}
