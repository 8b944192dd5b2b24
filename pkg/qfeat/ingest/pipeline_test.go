package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

type fakeTagger struct {
	out map[string]string
	err error
}

func (f fakeTagger) Tag(raw string) (string, error) {
	return f.out[raw], f.err
}

type fakeRecognizer struct {
	out map[string][]string
	err error
}

func (f fakeRecognizer) NameEntities(raw string) ([]string, error) {
	return f.out[raw], f.err
}

func TestPipelineFusionOrder(t *testing.T) {
	raw := "Who wrote Hamlet"
	p := NewPipeline(
		NewChunkExtractor(),
		NewEntityAdapter(fakeRecognizer{out: map[string][]string{raw: {"Hamlet"}}}),
		NewTaggedExtractor(NewSemanticIndex(map[string][]string{"hamlet": {"play"}})),
		fakeTagger{out: map[string]string{raw: "Who_WP wrote_VBD Hamlet_NNP"}},
	)

	terms, err := p.Process("[NP Who] [VP wrote] [NP Hamlet]", raw)
	require.NoError(t, err)

	assert.Equal(t, question.Terms(
		"[NP Who]", "[NP Hamlet]", "[VP wrote]",
		"Hamlet",
		"WP_Who", "Who", "VBD_wrote", "wrote", "NNP_Hamlet", "Hamlet", "play",
	), terms)
}

func TestPipelineRecognizerError(t *testing.T) {
	p := NewPipeline(nil, NewEntityAdapter(fakeRecognizer{err: errors.New("boom")}), nil, fakeTagger{})

	_, err := p.Process("[NP x]", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestPipelineTaggerError(t *testing.T) {
	p := NewPipeline(nil, nil, nil, fakeTagger{err: errors.New("tagger down")})

	_, err := p.Process("[NP x]", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag")
}

func TestPipelineNoTagger(t *testing.T) {
	p := NewPipeline(nil, nil, nil, nil)

	_, err := p.Process("", "x")
	assert.ErrorIs(t, err, ErrNoTagger)
}

func TestPipelineDefaults(t *testing.T) {
	p := NewPipeline(nil, nil, nil, fakeTagger{out: map[string]string{"dogs": "dogs_NNS"}})
	assert.NotNil(t, p.Chunks())
	assert.NotNil(t, p.Entities())
	assert.NotNil(t, p.Tagged())

	terms, err := p.Process("[NP dogs]", "dogs")
	require.NoError(t, err)
	assert.Equal(t, question.Terms("[NP dogs]", "NNS_dogs", "dogs"), terms)
}

func TestEntityAdapterPreservesOrderAndDuplicates(t *testing.T) {
	a := NewEntityAdapter(fakeRecognizer{out: map[string][]string{"q": {"Paris", "France", "Paris"}}})

	terms, err := a.Extract("q")
	require.NoError(t, err)
	assert.Equal(t, question.Terms("Paris", "France", "Paris"), terms)
}

func TestEntityAdapterNilRecognizer(t *testing.T) {
	terms, err := NewEntityAdapter(nil).Extract("q")
	require.NoError(t, err)
	assert.Empty(t, terms)
}
