package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <key> <value>",
	Short: "Insert a key/value pair into the demo tree and print the result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		tree, err := treeFromContext(cmd)
		if err != nil {
			return err
		}

		prev, hadOld, err := tree.Insert(key, args[1])
		if err != nil {
			return err
		}
		if hadOld {
			cmd.Printf("updated key %d: %q -> %q\n", key, prev, args[1])
		} else {
			cmd.Printf("inserted key %d: %q (tree now holds %d entries)\n", key, args[1], tree.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
