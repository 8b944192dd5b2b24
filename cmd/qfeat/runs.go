package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/qfeat/pkg/qfeat/store"
	"github.com/cognicore/qfeat/pkg/qfeat/store/sqlite"
)

func (a *app) newRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List stored load runs, or show one run",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bindDB(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			dbPath := a.v.GetString(keyDB)
			if dbPath == "" {
				return fmt.Errorf("--db required")
			}

			st, err := sqlite.OpenSQLite(ctx, dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if len(args) == 0 {
				runs, err := st.ListRuns(ctx, limit)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), runs)
			}

			run, found, err := st.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("run %s not found", args[0])
			}
			qs := make([]questionOutput, 0, len(run.Questions))
			for _, q := range run.Questions {
				qs = append(qs, newQuestionOutput(q))
			}
			return writeJSON(cmd.OutOrStdout(), struct {
				Summary   store.RunSummary `json:"summary"`
				Questions []questionOutput `json:"questions"`
			}{run.Summary(), qs})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 for all)")
	cmd.Flags().String("db", "", "SQLite database holding the runs")
	return cmd
}
