package cmd

import "github.com/spf13/cobra"

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the demo tree's structural invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := treeFromContext(cmd)
		if err != nil {
			return err
		}
		if err := tree.Validate(); err != nil {
			cmd.Printf("invalid: %v\n", err)
			return err
		}
		cmd.Printf("ok: %d entries, structure validates\n", tree.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
