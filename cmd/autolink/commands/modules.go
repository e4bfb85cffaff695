package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the native modules to link, per platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return err
			}

			platforms, _ := cmd.Flags().GetStringSlice("platform")
			modules, err := c.app.FindModules(cmd.Context(), cwd, platforms)
			if err != nil {
				return err
			}

			return writeOutput(cmd, modules)
		},
	}
	addOutputFlag(cmd)
	cmd.Flags().StringSliceP("platform", "p", nil, "Target platform (repeatable); defaults to the configured platforms")
	return cmd
}
