package qfeat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/qfeat/internal/log"
	"github.com/cognicore/qfeat/pkg/qfeat/config"
	"github.com/cognicore/qfeat/pkg/qfeat/ingest"
	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
	"github.com/cognicore/qfeat/pkg/qfeat/store/memstore"
)

// mapTagger tags words from a fixed table, NN otherwise.
type mapTagger map[string]string

func (m mapTagger) Tag(raw string) (string, error) {
	fields := strings.Fields(strings.TrimRight(raw, "?"))
	for i, f := range fields {
		tag, ok := m[f]
		if !ok {
			tag = "NN"
		}
		fields[i] = f + "_" + tag
	}
	return strings.Join(fields, " "), nil
}

type fixedChunker map[string]string

func (c fixedChunker) Chunk(raw string) (string, error) {
	if out, ok := c[raw]; ok {
		return out, nil
	}
	return "", errors.New("no chunks for " + raw)
}

type listRecognizer []string

func (l listRecognizer) NameEntities(raw string) ([]string, error) {
	var out []string
	for _, e := range l {
		if strings.Contains(raw, e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func writeClasses(t *testing.T, classes map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for class, words := range classes {
		require.NoError(t, os.WriteFile(filepath.Join(dir, class), []byte(words), 0o644))
	}
	return dir
}

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	dir := writeClasses(t, map[string]string{"play": "hamlet\n", "person": "who\n"})
	return New(Options{
		Index:      ingest.NewLazySemanticIndex(dir, log.Nop),
		Tagger:     mapTagger{"Who": "WP", "wrote": "VBD", "Hamlet": "NNP"},
		Recognizer: listRecognizer{"Hamlet"},
		Chunker:    fixedChunker{"Who wrote Hamlet?": "[NP Who] [VP wrote] [NP Hamlet] ?"},
		Logger:     log.Nop,
	})
}

func TestChunksUsesChunker(t *testing.T) {
	e := newTestExtractor(t)

	terms, err := e.Chunks("Who wrote Hamlet?")
	require.NoError(t, err)
	assert.Equal(t, question.Terms("[NP Who]", "[NP Hamlet]", "[VP wrote]"), terms)

	_, err = e.Chunks("unknown")
	assert.Error(t, err)
}

func TestPreloadedChunks(t *testing.T) {
	e := newTestExtractor(t)

	terms := e.PreloadedChunks("[NP A] [VP B] [NP C]")
	assert.Equal(t, question.Terms("[NP A]", "[VP B]"), terms)
}

func TestNameEntities(t *testing.T) {
	e := newTestExtractor(t)

	terms, err := e.NameEntities("Who wrote Hamlet?")
	require.NoError(t, err)
	assert.Equal(t, question.Terms("Hamlet"), terms)
}

func TestQueryTermsResolvesSemanticClasses(t *testing.T) {
	e := newTestExtractor(t)

	terms, err := e.QueryTerms("Who_WP wrote_VBD Hamlet_NNP")
	require.NoError(t, err)
	assert.Equal(t, question.Terms(
		"WP_Who", "Who", "person",
		"VBD_wrote", "wrote",
		"NNP_Hamlet", "Hamlet", "play",
	), terms)
}

func TestQueryTermsIndexFailure(t *testing.T) {
	e := New(Options{
		Index:  ingest.NewLazySemanticIndex(filepath.Join(t.TempDir(), "missing"), log.Nop),
		Tagger: mapTagger{},
		Logger: log.Nop,
	})

	_, err := e.QueryTerms("dog_NN")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestQueryTermsClassesTurnedOff(t *testing.T) {
	e := New(Options{NoSemanticClasses: true, Tagger: mapTagger{}, Logger: log.Nop})

	terms, err := e.QueryTerms("dog_NN")
	require.NoError(t, err)
	assert.Equal(t, question.Terms("NN_dog", "dog"), terms)
}

func TestQueryTermsWithoutIndex(t *testing.T) {
	e := New(Options{Tagger: mapTagger{}, Logger: log.Nop})

	_, err := e.QueryTerms("dog_NN")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	_, err = e.LoadAnnotated(context.Background(), t.TempDir(), "train", ".label", ".chunks")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestFromComponentsWithoutClassPath(t *testing.T) {
	t.Setenv("QFEAT_SEMANTIC_CLASS_PATH", "")

	comp, err := (&config.Loader{Logger: log.Nop}).Load()
	require.NoError(t, err)

	e := FromComponents(comp, Options{Tagger: mapTagger{}, Logger: log.Nop})
	_, err = e.QueryTerms("dog_NN")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	e = FromComponents(comp, Options{NoSemanticClasses: true, Tagger: mapTagger{}, Logger: log.Nop})
	terms, err := e.QueryTerms("dog_NN")
	require.NoError(t, err)
	assert.Equal(t, question.Terms("NN_dog", "dog"), terms)
}

func TestSearchEngineQueryTerms(t *testing.T) {
	e := newTestExtractor(t)

	terms := e.SearchEngineQueryTerms("What is the U.S. capital?")
	assert.Equal(t, question.Terms("is", "the", "US", "capital"), terms)
}

func TestQuestionInfo(t *testing.T) {
	e := newTestExtractor(t)

	info, err := e.QuestionInfo("hum", "ind", "Who wrote Hamlet?")
	require.NoError(t, err)

	assert.Equal(t, question.Human, info.Type())
	assert.Equal(t, question.SubType("HUM_ind"), info.SubType())
	assert.Equal(t, "Who wrote Hamlet?", info.Raw())
	assert.Equal(t, question.Terms(
		"[NP Who]", "[NP Hamlet]", "[VP wrote]",
		"Hamlet",
		"WP_Who", "Who", "person",
		"VBD_wrote", "wrote",
		"NNP_Hamlet", "Hamlet", "play",
	), info.Terms())

	// Fully qualified subtype labels are accepted too
	info, err = e.QuestionInfo("HUM", "HUM_ind", "Who wrote Hamlet?")
	require.NoError(t, err)
	assert.Equal(t, question.SubType("HUM_ind"), info.SubType())
}

func TestQuestionInfoUnknownLabels(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.QuestionInfo("XYZ", "city", "Who wrote Hamlet?")
	assert.ErrorIs(t, err, question.ErrUnknownType)

	_, err = e.QuestionInfo("LOC", "nope", "Who wrote Hamlet?")
	assert.ErrorIs(t, err, question.ErrUnknownSubType)

	_, err = e.QuestionInfo("LOC", "HUM_ind", "Who wrote Hamlet?")
	assert.ErrorIs(t, err, question.ErrUnknownSubType)
	assert.True(t, question.IsUnresolved(err))
}

func TestAllQueryTypes(t *testing.T) {
	e := newTestExtractor(t)

	assert.Equal(t, []question.Type{"ABBR", "DESC", "ENTY", "HUM", "LOC", "NUM"}, e.AllQueryTypes())
	subs := e.AllQuerySubTypes()
	assert.Len(t, subs, 50)
	assert.Equal(t, question.SubType("ABBR_abb"), subs[0])
}

func TestStopWords(t *testing.T) {
	e := newTestExtractor(t)

	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("a an\nthe\n"), 0o644))
	assert.Equal(t, []string{"a", "an", "the"}, e.StopWords(path))

	missing := e.StopWords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestLoadAnnotatedAndSaveRun(t *testing.T) {
	ctx := context.Background()
	e := newTestExtractor(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train_1.label"),
		[]byte("HUM:ind Who wrote Hamlet\nbogus line\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train_1.chunks"),
		[]byte("[NP Who] [VP wrote] [NP Hamlet]\n[NP bogus]\n"), 0o644))
	// No chunk file: a pairing error, counted per file rather than per record.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train_2.label"),
		[]byte("LOC:city What city is the capital ?\n"), 0o644))

	res, err := e.LoadAnnotated(ctx, dir, "train", ".label", ".chunks")
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, 1, res.Report.Skipped())
	assert.Equal(t, 1, res.Report.SkippedFiles())
	assert.Contains(t, question.Strings(res.Questions[0].Terms()), "play")

	st := memstore.New()
	run, err := e.SaveRun(ctx, st, dir, res)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 1, run.Skipped)

	got, ok, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Questions, 1)
	assert.True(t, got.Questions[0].Equal(res.Questions[0]))
}

func TestLoadAnnotatedMissingPath(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.LoadAnnotated(context.Background(), "", "train", ".label", ".chunks")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestTagFeedsQueryTerms(t *testing.T) {
	e := newTestExtractor(t)

	tagged, err := e.Tag("Who wrote Hamlet?")
	require.NoError(t, err)
	assert.Equal(t, "Who_WP wrote_VBD Hamlet_NNP", tagged)

	terms, err := e.QueryTerms(tagged)
	require.NoError(t, err)
	assert.Contains(t, terms, question.Term("play"))
}
