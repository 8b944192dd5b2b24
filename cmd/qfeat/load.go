package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cognicore/qfeat/internal/log"
	"github.com/cognicore/qfeat/pkg/qfeat"
	"github.com/cognicore/qfeat/pkg/qfeat/corpus"
	"github.com/cognicore/qfeat/pkg/qfeat/store/sqlite"
)

type loadOutput struct {
	RunID     string               `json:"run_id,omitempty"`
	Questions int                  `json:"questions"`
	Skipped   int                  `json:"skipped"`
	Files     []corpus.FileSummary `json:"files"`
	Problems  []string             `json:"problems,omitempty"`
}

func (a *app) newLoadCmd() *cobra.Command {
	var (
		corpusPath string
		prefix     string
		ext        string
		chunkExt   string
		pairing    string
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load an annotated question corpus",
		Long: `Load reads every question file <prefix>*<ext> in the corpus directory with
its chunk file <prefix>*<chunk-ext>, reports what was read and skipped, and
with --db stores the questions as a new run.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bindDB(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			p, err := corpus.PairingByName(pairing)
			if err != nil {
				return err
			}
			e, err := a.extractor(qfeat.Options{Pairing: p})
			if err != nil {
				return err
			}

			res, err := e.LoadAnnotated(ctx, corpusPath, prefix, ext, chunkExt)
			if err != nil {
				return err
			}

			out := loadOutput{
				Questions: len(res.Questions),
				Skipped:   res.Report.Skipped(),
				Files:     res.Report.Files,
			}
			if err := res.Report.Err(); err != nil {
				out.Problems = problems(err)
			}

			if dbPath := a.v.GetString(keyDB); dbPath != "" {
				st, err := sqlite.OpenSQLite(ctx, dbPath)
				if err != nil {
					return err
				}
				defer st.Close()

				run, err := e.SaveRun(ctx, st, corpusPath, res)
				if err != nil {
					return err
				}
				out.RunID = run.ID
			}

			log.Default.Infof("loaded %d questions, skipped %d", out.Questions, out.Skipped)
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "corpus directory (required)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "file name prefix")
	cmd.Flags().StringVar(&ext, "ext", ".label", "question file extension")
	cmd.Flags().StringVar(&chunkExt, "chunk-ext", ".chunks", "chunk file extension")
	cmd.Flags().StringVar(&pairing, "pairing", "basename", "pairing of question and chunk files: basename or positional")
	cmd.Flags().String("db", "", "SQLite database to store the run in")
	cmd.MarkFlagRequired("corpus")
	return cmd
}

// problems flattens a joined report error into one line per problem.
func problems(err error) []string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	for _, e := range joined.Unwrap() {
		out = append(out, e.Error())
	}
	return out
}
