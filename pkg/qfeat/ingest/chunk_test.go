package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

func TestChunkExtractorFirstNounAndVerb(t *testing.T) {
	terms := NewChunkExtractor().Extract("[NP A] [VP B] [NP C]")
	assert.Equal(t, question.Terms("[NP A]", "[VP B]"), terms)
}

func TestChunkExtractorQuestionPhraseFirst(t *testing.T) {
	terms := NewChunkExtractor().Extract("[ADVP How] [NP dogs] [VP run] [NP fast]")
	assert.Equal(t, question.Terms("[ADVP How]", "[NP dogs]", "[VP run]"), terms)
}

func TestChunkExtractorStopsBeforeLateQuestionPhrase(t *testing.T) {
	terms := NewChunkExtractor().Extract("[NP dogs] [VP run] [ADVP When] [NP x]")
	assert.Equal(t, question.Terms("[NP dogs]", "[VP run]"), terms)
}

func TestChunkExtractorQuestionPhraseIsNotNounPhrase(t *testing.T) {
	terms := NewChunkExtractor().Extract("[NP What city ] [VP is ] [NP the capital ] [PP of ] [NP France ] ?")
	assert.Equal(t, question.Terms("[NP What city ]", "[NP the capital ]", "[VP is ]"), terms)
}

func TestChunkExtractorCaseInsensitivePrefix(t *testing.T) {
	terms := NewChunkExtractor().Extract("[np WHO] [VP wrote] [NP Hamlet]")
	assert.Equal(t, question.Terms("[np WHO]", "[NP Hamlet]", "[VP wrote]"), terms)
}

func TestChunkExtractorMultipleQuestionPhrases(t *testing.T) {
	terms := NewChunkExtractor().Extract("[NP Who] [NP which] [ADVP Where] [VP went]")
	assert.Equal(t, question.Terms("[NP Who]", "[NP which]", "[ADVP Where]", "[VP went]"), terms)
}

func TestChunkExtractorOnlyVerb(t *testing.T) {
	terms := NewChunkExtractor().Extract("[PP in] [VP go] [VP stay]")
	assert.Equal(t, question.Terms("[VP go]"), terms)
}

func TestChunkExtractorNothingRecognized(t *testing.T) {
	assert.Empty(t, NewChunkExtractor().Extract("[PP of] [ADJP big] [O ?]"))
	assert.Empty(t, NewChunkExtractor().Extract(""))
}

func TestChunkExtractorMalformedTail(t *testing.T) {
	terms := NewChunkExtractor().Extract("[NP dogs] [VP run")
	assert.Equal(t, question.Terms("[NP dogs]"), terms)
}

func TestChunkExtractorSkipsMalformedGroup(t *testing.T) {
	terms := NewChunkExtractor().Extract("[NP What city ] [ [VP is ] [NP the capital ]")
	assert.Equal(t, question.Terms("[NP What city ]", "[NP the capital ]", "[VP is ]"), terms)
}

func TestChunkExtractorPrefixMatchesLongerWords(t *testing.T) {
	// "[NP Who" also covers "[NP Whom" and "[NP Whose"
	terms := NewChunkExtractor().Extract("[NP Whose book] [VP is] [NP this]")
	assert.Equal(t, question.Terms("[NP Whose book]", "[NP this]", "[VP is]"), terms)
}
