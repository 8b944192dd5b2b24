// Package annotate provides the default linguistic collaborators of the
// extraction pipeline, backed by the prose NLP library: a part-of-speech
// tagger, a named-entity recognizer and a tag-driven phrase chunker.
package annotate

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// TaggedToken is a token with its Penn Treebank tag.
type TaggedToken struct {
	Text string
	Tag  string
}

func tokens(raw string) ([]TaggedToken, error) {
	doc, err := prose.NewDocument(raw,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}
	toks := doc.Tokens()
	out := make([]TaggedToken, len(toks))
	for i, t := range toks {
		out[i] = TaggedToken{Text: t.Text, Tag: t.Tag}
	}
	return out, nil
}

// Tagger tags raw text as "word_TAG word_TAG ...".
type Tagger struct{}

// NewTagger creates a tagger.
func NewTagger() *Tagger { return &Tagger{} }

// Tag implements ingest.Tagger.
func (t *Tagger) Tag(raw string) (string, error) {
	toks, err := tokens(raw)
	if err != nil {
		return "", err
	}
	return FormatTagged(toks), nil
}

// FormatTagged renders tokens as space-separated word_TAG pairs.
func FormatTagged(toks []TaggedToken) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text + "_" + t.Tag
	}
	return strings.Join(parts, " ")
}

// Recognizer returns the named entities prose finds in raw text.
type Recognizer struct{}

// NewRecognizer creates a recognizer.
func NewRecognizer() *Recognizer { return &Recognizer{} }

// NameEntities implements ingest.Recognizer.
func (r *Recognizer) NameEntities(raw string) ([]string, error) {
	doc, err := prose.NewDocument(raw, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}
	ents := doc.Entities()
	out := make([]string, len(ents))
	for i, e := range ents {
		out[i] = e.Text
	}
	return out, nil
}
