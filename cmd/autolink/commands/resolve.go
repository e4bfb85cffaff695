package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/autolink/internal/core/domain"
)

type resolveOutput struct {
	Root         string                  `json:"root" yaml:"root"`
	Fingerprint  string                  `json:"fingerprint" yaml:"fingerprint"`
	Dependencies domain.ResolutionResult `json:"dependencies" yaml:"dependencies"`
}

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every dependency of the project, with duplicate locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return err
			}

			resolution, err := c.app.Resolve(cmd.Context(), cwd)
			if err != nil {
				return err
			}

			if fingerprintOnly, _ := cmd.Flags().GetBool("fingerprint"); fingerprintOnly {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), resolution.Fingerprint)
				return err
			}

			return writeOutput(cmd, resolveOutput{
				Root:         resolution.Project.Root,
				Fingerprint:  resolution.Fingerprint,
				Dependencies: resolution.Result,
			})
		},
	}
	addOutputFlag(cmd)
	cmd.Flags().Bool("fingerprint", false, "Print only the fingerprint of the resolution")
	return cmd
}
