package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", outputJSON, "Output format (json or yaml)")
}

func writeOutput(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	return encode(cmd.OutOrStdout(), format, v)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return zerr.Wrap(err, "failed to encode yaml output")
		}
		return enc.Close()
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedOutput, "unknown --output"), "format", format)
	}
}
