package ingest

import (
	"fmt"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// Recognizer finds named entities in raw text.
type Recognizer interface {
	NameEntities(raw string) ([]string, error)
}

// EntityAdapter wraps recognizer output as terms
type EntityAdapter struct {
	recognizer Recognizer
}

// NewEntityAdapter creates an adapter. A nil recognizer yields no terms.
func NewEntityAdapter(r Recognizer) *EntityAdapter {
	return &EntityAdapter{recognizer: r}
}

// Extract returns one term per entity span, verbatim and in recognizer order.
func (a *EntityAdapter) Extract(raw string) ([]question.Term, error) {
	if a.recognizer == nil {
		return nil, nil
	}
	spans, err := a.recognizer.NameEntities(raw)
	if err != nil {
		return nil, fmt.Errorf("name entities: %w", err)
	}
	return question.Terms(spans...), nil
}
