package ingest

import (
	"strings"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// TaggedExtractor turns tagger output ("word_TAG word_TAG ...") into
// tag+word, word and semantic-class terms.
type TaggedExtractor struct {
	index *SemanticIndex
}

// NewTaggedExtractor creates an extractor. A nil index yields no class terms.
func NewTaggedExtractor(index *SemanticIndex) *TaggedExtractor {
	return &TaggedExtractor{index: index}
}

// Extract emits, for every word_TAG token: "TAG_word", "word", then each
// semantic class of the lowercased word in index order. Tokens without a
// word_TAG shape are skipped.
func (e *TaggedExtractor) Extract(tagged string) []question.Term {
	var terms []question.Term
	for _, run := range WordRuns(tagged) {
		word, tag, ok := SplitTagged(run)
		if !ok {
			continue
		}
		terms = append(terms, question.Term(tag+"_"+word), question.Term(word))

		classes, _ := e.index.Lookup(strings.ToLower(word))
		for _, class := range classes {
			terms = append(terms, question.Term(class))
		}
	}
	return terms
}

// SplitTagged splits a word_TAG token at its last underscore that has
// characters on both sides, so "New_York_NNP" gives ("New_York", "NNP").
func SplitTagged(token string) (word, tag string, ok bool) {
	for i := len(token) - 2; i > 0; i-- {
		if token[i] == '_' {
			return token[:i], token[i+1:], true
		}
	}
	return "", "", false
}
