package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"montage/internal/preflight"
)

type checkRow struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional"`
	Detail   string `json:"detail,omitempty"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that ffprobe and the log directory are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)

			if jsonOutput {
				rows := make([]checkRow, 0, len(results))
				for _, r := range results {
					rows = append(rows, checkRow(r))
				}
				if err := writeJSON(cmd, rows); err != nil {
					return err
				}
			} else {
				body := make([][]string, 0, len(results))
				for _, r := range results {
					state := "ok"
					switch {
					case !r.Passed && r.Optional:
						state = "warn"
					case !r.Passed:
						state = "fail"
					}
					body = append(body, []string{r.Name, state, valueOrDash(r.Detail)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
					headers: []string{"Check", "Status", "Detail"},
					rows:    body,
				}))
			}
			if preflight.Failed(results) {
				return errors.New("check: required checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
