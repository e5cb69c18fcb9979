package cmd

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/ssargent/bptreemap/pkg/treestats"
)

var (
	statsMetricsFlag bool
	demoRecorderOnce sync.Once
	demoRecorder     *treestats.Recorder
)

// recorderForDemo lazily builds the process-wide Recorder so repeated
// invocations of `stats --metrics` (or repeated test runs in the same
// binary) update one set of registered gauges instead of re-registering
// them with promauto on every call.
func recorderForDemo() *treestats.Recorder {
	demoRecorderOnce.Do(func() {
		demoRecorder = treestats.NewRecorder("bptreedemo", "demo")
	})
	return demoRecorder
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print arena occupancy and tree shape for the demo tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := treeFromContext(cmd)
		if err != nil {
			return err
		}
		s := tree.Stats()
		cmd.Printf("entries: %d\n", s.Len)
		cmd.Printf("leaves: %d\n", s.LeafCount)
		cmd.Printf("leaf arena: allocated=%d free=%d total=%d utilization=%.2f fragmentation=%.2f\n",
			s.LeafArena.Allocated, s.LeafArena.Free, s.LeafArena.Total, s.LeafArena.Utilization, s.LeafArena.Fragmentation)
		cmd.Printf("branch arena: allocated=%d free=%d total=%d utilization=%.2f fragmentation=%.2f\n",
			s.BranchArena.Allocated, s.BranchArena.Free, s.BranchArena.Total, s.BranchArena.Utilization, s.BranchArena.Fragmentation)

		if !statsMetricsFlag {
			return nil
		}

		recorderForDemo().Record(treestats.Snapshot{
			Len:             s.Len,
			LeafCount:       s.LeafCount,
			LeafAllocated:   s.LeafArena.Allocated,
			LeafFree:        s.LeafArena.Free,
			BranchAllocated: s.BranchArena.Allocated,
			BranchFree:      s.BranchArena.Free,
		})

		families, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			return fmt.Errorf("failed to gather metrics: %w", err)
		}
		cmd.Println("\n# Prometheus metrics")
		enc := expfmt.NewEncoder(cmd.OutOrStdout(), expfmt.FmtText)
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				return fmt.Errorf("failed to encode metrics: %w", err)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsMetricsFlag, "metrics", false, "Also publish the demo tree's occupancy as Prometheus gauges and print them")
	rootCmd.AddCommand(statsCmd)
}
