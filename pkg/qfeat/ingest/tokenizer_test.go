package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

func TestSearchTokenizer(t *testing.T) {
	tok := NewSearchTokenizer(DefaultQuestionWords)
	terms := tok.Tokenize("What is the U.S. capital?")

	assert.Equal(t, question.Terms("is", "the", "US", "capital"), terms)
}

func TestSearchTokenizerStopwordsCaseInsensitive(t *testing.T) {
	tok := NewSearchTokenizer(DefaultQuestionWords)
	terms := tok.Tokenize("WHO wrote Hamlet and whom did HOW marry")

	assert.Equal(t, question.Terms("wrote", "Hamlet", "and", "did", "marry"), terms)
}

func TestSearchTokenizerKeepsDuplicatesAndCase(t *testing.T) {
	tok := NewSearchTokenizer(DefaultQuestionWords)
	terms := tok.Tokenize("New York, new york")

	assert.Equal(t, question.Terms("New", "York", "new", "york"), terms)
}

func TestSearchTokenizerNoStemming(t *testing.T) {
	tok := NewSearchTokenizer(DefaultQuestionWords)
	assert.Equal(t, question.Terms("running", "dogs"), tok.Tokenize("running dogs"))
}

func TestSearchTokenizerOnlyStopwords(t *testing.T) {
	tok := NewSearchTokenizer(DefaultQuestionWords)
	assert.Empty(t, tok.Tokenize("Who? What! When..."))
}

func TestSearchTokenizerAddRemoveStopword(t *testing.T) {
	tok := NewSearchTokenizer(DefaultQuestionWords)

	tok.AddStopword("The")
	assert.Equal(t, question.Terms("capital"), tok.Tokenize("what the capital"))

	tok.RemoveStopword("WHAT")
	assert.Equal(t, question.Terms("what", "capital"), tok.Tokenize("what the capital"))
}

func TestWordRuns(t *testing.T) {
	assert.Equal(t, []string{"a_b", "c1", "D"}, WordRuns("a_b, c1 (D)"))
	assert.Equal(t, []string{"caf"}, WordRuns("café"))
	assert.Empty(t, WordRuns("?! ..."))
}
