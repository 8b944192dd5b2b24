package main

import (
	"github.com/spf13/cobra"

	"github.com/cognicore/qfeat/pkg/qfeat"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

type questionOutput struct {
	Type     string   `json:"type"`
	SubType  string   `json:"subtype"`
	Question string   `json:"question"`
	Terms    []string `json:"terms"`
}

func newQuestionOutput(q question.Info) questionOutput {
	return questionOutput{
		Type:     string(q.Type()),
		SubType:  string(q.SubType()),
		Question: q.Raw(),
		Terms:    question.Strings(q.Terms()),
	}
}

func (a *app) newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the question types and subtypes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.extractor(qfeat.Options{})
			if err != nil {
				return err
			}

			byType := make(map[string][]string)
			var order []string
			for _, t := range e.AllQueryTypes() {
				order = append(order, string(t))
				byType[string(t)] = []string{}
			}
			for _, st := range e.AllQuerySubTypes() {
				t := string(st.Type())
				byType[t] = append(byType[t], string(st))
			}

			type typeOutput struct {
				Type     string   `json:"type"`
				SubTypes []string `json:"subtypes"`
			}
			out := make([]typeOutput, 0, len(order))
			for _, t := range order {
				out = append(out, typeOutput{Type: t, SubTypes: byType[t]})
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
