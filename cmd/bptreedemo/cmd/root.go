package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bptreemap/pkg/bptree"
	"github.com/ssargent/bptreemap/pkg/treeconfig"
)

type treeContextKey struct{}

// demoSize is the number of entries the demo tree is seeded with
// before each subcommand runs.
const demoSize = 100

var rootCmd = &cobra.Command{
	Use:   "bptreedemo",
	Short: "bptreedemo - in-memory ordered map demo",
	Long: `bptreedemo builds an in-memory B+ tree from a YAML-configured
capacity, seeds it with a deterministic dataset, and prints the result
of the requested operation against it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg := treeconfig.DefaultConfig()
		if configPath != "" && treeconfig.ConfigExists(configPath) {
			loaded, err := treeconfig.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}
		if capacity, _ := cmd.Flags().GetInt("capacity"); capacity > 0 {
			cfg.Capacity = capacity
		}

		if cfg.Logging.Level == "debug" {
			cmd.PrintErrf("debug: building demo tree with capacity=%d telemetry=%v config=%q\n",
				cfg.Capacity, cfg.Telemetry.Enabled, configPath)
		}

		tree, err := bptree.New[int, string](cfg.Capacity)
		if err != nil {
			return fmt.Errorf("failed to build demo tree: %w", err)
		}
		for i := 0; i < demoSize; i++ {
			tree.Insert(i, fmt.Sprintf("value_%d", i))
		}

		cmd.SetContext(context.WithValue(cmd.Context(), treeContextKey{}, tree))
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", treeconfig.GetDefaultConfigPath(), "Path to a YAML config file")
	rootCmd.PersistentFlags().Int("capacity", 0, "Override the configured node capacity (0 = use config)")
}

func treeFromContext(cmd *cobra.Command) (*bptree.Tree[int, string], error) {
	tree, ok := cmd.Context().Value(treeContextKey{}).(*bptree.Tree[int, string])
	if !ok {
		return nil, fmt.Errorf("demo tree not found in command context")
	}
	return tree, nil
}
