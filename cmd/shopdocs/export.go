package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the contracts register to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			application, err := buildApp()
			if err != nil {
				return err
			}

			if err := application.contracts.ExportTo(cmd.Context(), format, out); err != nil {
				return err
			}
			application.log.Info().Str("format", format).Str("out", out).Msg("register exported")
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv, xlsx or db")
	cmd.Flags().StringVar(&out, "out", "", "output file path")
	return cmd
}
