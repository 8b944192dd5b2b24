package ingest

import (
	"strings"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// DefaultQuestionWords are dropped from search terms.
var DefaultQuestionWords = []string{"who", "whom", "what", "when", "where", "how", "which"}

// SearchTokenizer turns raw question text into search-engine query terms
type SearchTokenizer struct {
	stopwords map[string]struct{}
}

// NewSearchTokenizer creates a tokenizer with the given stopword list.
// Stopwords are matched case-insensitively.
func NewSearchTokenizer(stopwords []string) *SearchTokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &SearchTokenizer{stopwords: stops}
}

// Tokenize removes periods (so "U.S." becomes "US"), splits the text into
// word-character runs and drops stopwords. Order, duplicates and case of the
// remaining tokens are kept.
func (t *SearchTokenizer) Tokenize(text string) []question.Term {
	text = strings.ReplaceAll(text, ".", "")

	var terms []question.Term
	for _, word := range WordRuns(text) {
		if t.isStopword(word) {
			continue
		}
		terms = append(terms, question.Term(word))
	}
	return terms
}

func (t *SearchTokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[strings.ToLower(word)]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *SearchTokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (t *SearchTokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}

// WordRuns returns the maximal runs of ASCII word characters
// ([0-9A-Za-z_]) in s, in order.
func WordRuns(s string) []string {
	var runs []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isWordByte(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, s[start:])
	}
	return runs
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
