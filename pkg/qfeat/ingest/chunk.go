package ingest

import (
	"strings"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// QuestionPhrasePrefixes mark chunks that carry the question word.
var QuestionPhrasePrefixes = []string{
	"[ADVP How",
	"[NP What",
	"[NP Who",
	"[NP Which",
	"[ADVP Where",
	"[ADVP When",
}

// ChunkExtractor turns a chunk annotation into question-phrase,
// first-noun-phrase and first-verb-phrase terms.
type ChunkExtractor struct {
	prefixes []string
}

// NewChunkExtractor creates an extractor recognizing QuestionPhrasePrefixes.
func NewChunkExtractor() *ChunkExtractor {
	prefixes := make([]string, len(QuestionPhrasePrefixes))
	for i, p := range QuestionPhrasePrefixes {
		prefixes[i] = strings.ToLower(p)
	}
	return &ChunkExtractor{prefixes: prefixes}
}

// Extract scans the groups left to right. Question-phrase groups are emitted
// as they are seen; the first NP and the first VP are held back and emitted
// last, noun before verb. Scanning stops once both are found, so groups after
// that point are never examined.
//
// Malformed groups are skipped; the well-formed groups around them are used.
func (c *ChunkExtractor) Extract(annotated string) []question.Term {
	chunks, _ := ParseChunks(annotated)

	var (
		terms     []question.Term
		firstNoun string
		firstVerb string
	)
	for _, ch := range chunks {
		if firstNoun != "" && firstVerb != "" {
			break
		}
		switch {
		case c.isQuestionPhrase(ch.Text):
			terms = append(terms, question.Term(ch.Text))
		case firstNoun == "" && ch.Tag == "NP":
			firstNoun = ch.Text
		case firstVerb == "" && ch.Tag == "VP":
			firstVerb = ch.Text
		}
	}

	if firstNoun != "" {
		terms = append(terms, question.Term(firstNoun))
	}
	if firstVerb != "" {
		terms = append(terms, question.Term(firstVerb))
	}
	return terms
}

func (c *ChunkExtractor) isQuestionPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range c.prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
