package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/bptreemap/pkg/bptree"
)

var rangeCmd = &cobra.Command{
	Use:   "range <start> <end>",
	Short: "Print every (key, value) pair with start <= key < end",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		end, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		tree, err := treeFromContext(cmd)
		if err != nil {
			return err
		}

		count := 0
		for k, v := range tree.Range(bptree.HalfOpen(start, end)) {
			cmd.Printf("%d -> %q\n", k, v)
			count++
		}
		cmd.Printf("(%d entries)\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rangeCmd)
}
