package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/qfeat/internal/htmltext"
	"github.com/cognicore/qfeat/pkg/qfeat"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

type extractOutput struct {
	Question    string   `json:"question"`
	Type        string   `json:"type,omitempty"`
	SubType     string   `json:"subtype,omitempty"`
	Chunks      []string `json:"chunks"`
	Entities    []string `json:"entities"`
	Tagged      string   `json:"tagged"`
	QueryTerms  []string `json:"query_terms"`
	SearchTerms []string `json:"search_terms"`
	Terms       []string `json:"terms,omitempty"`
}

func (a *app) newExtractCmd() *cobra.Command {
	var (
		html    bool
		typ     string
		subType string
	)

	cmd := &cobra.Command{
		Use:   "extract [question]",
		Short: "Print the features of one question",
		Long: `Extract runs every feature extractor over one question and prints the
results as JSON. With --type and --subtype the full classification record
is built as well.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			if html {
				raw = htmltext.Strip(raw)
			}
			if strings.TrimSpace(raw) == "" {
				return fmt.Errorf("empty question")
			}
			if (typ == "") != (subType == "") {
				return fmt.Errorf("--type and --subtype must be given together")
			}

			e, err := a.extractor(qfeat.Options{})
			if err != nil {
				return err
			}

			out := extractOutput{Question: raw}
			chunks, err := e.Chunks(raw)
			if err != nil {
				return err
			}
			out.Chunks = question.Strings(chunks)

			entities, err := e.NameEntities(raw)
			if err != nil {
				return err
			}
			out.Entities = question.Strings(entities)

			out.Tagged, err = e.Tag(raw)
			if err != nil {
				return err
			}
			queryTerms, err := e.QueryTerms(out.Tagged)
			if err != nil {
				return err
			}
			out.QueryTerms = question.Strings(queryTerms)
			out.SearchTerms = question.Strings(e.SearchEngineQueryTerms(raw))

			if typ != "" {
				info, err := e.QuestionInfo(typ, subType, raw)
				if err != nil {
					return err
				}
				out.Type = string(info.Type())
				out.SubType = string(info.SubType())
				out.Terms = question.Strings(info.Terms())
			}

			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "strip HTML markup from the question first")
	cmd.Flags().StringVar(&typ, "type", "", "coarse answer type, e.g. LOC")
	cmd.Flags().StringVar(&subType, "subtype", "", "fine answer type, e.g. city or LOC_city")
	return cmd
}
