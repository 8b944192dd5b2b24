// Package qfeat extracts the features used to classify questions by expected
// answer type: phrase chunks, named entities, tagged words with their semantic
// classes, and search-engine query terms. It also loads annotated question
// corpora for training.
package qfeat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/qfeat/internal/log"
	"github.com/cognicore/qfeat/pkg/qfeat/annotate"
	"github.com/cognicore/qfeat/pkg/qfeat/config"
	"github.com/cognicore/qfeat/pkg/qfeat/corpus"
	"github.com/cognicore/qfeat/pkg/qfeat/ingest"
	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
	"github.com/cognicore/qfeat/pkg/qfeat/store"
)

// Extractor is the question feature extraction facade
type Extractor struct {
	index     *ingest.LazySemanticIndex
	noClasses bool
	tagger    ingest.Tagger
	chunker   ingest.Chunker
	chunks    *ingest.ChunkExtractor
	entities  *ingest.EntityAdapter
	vocab     *question.Vocabulary
	tokenizer *ingest.SearchTokenizer
	pairing   corpus.Pairing
	logger    *zap.SugaredLogger
}

// Options configures an Extractor. Nil collaborators fall back to the
// prose-backed tagger, recognizer and chunker, the default vocabulary and
// the default question-word stoplist.
//
// Calls that add semantic-class terms fail with ErrInvalidConfig when Index
// is nil, unless NoSemanticClasses is set; then no class terms are added.
type Options struct {
	Index             *ingest.LazySemanticIndex
	NoSemanticClasses bool
	Tagger            ingest.Tagger
	Recognizer        ingest.Recognizer
	Chunker           ingest.Chunker
	Vocabulary        *question.Vocabulary
	Tokenizer         *ingest.SearchTokenizer
	Pairing           corpus.Pairing
	Logger            *zap.SugaredLogger
}

// New creates an Extractor with the given dependencies
func New(opts Options) *Extractor {
	e := &Extractor{
		index:     opts.Index,
		noClasses: opts.NoSemanticClasses,
		tagger:    opts.Tagger,
		chunker:   opts.Chunker,
		chunks:    ingest.NewChunkExtractor(),
		vocab:     opts.Vocabulary,
		tokenizer: opts.Tokenizer,
		pairing:   opts.Pairing,
		logger:    log.OrDefault(opts.Logger),
	}
	if e.tagger == nil {
		e.tagger = annotate.NewTagger()
	}
	if e.chunker == nil {
		e.chunker = annotate.NewChunker()
	}
	recognizer := opts.Recognizer
	if recognizer == nil {
		recognizer = annotate.NewRecognizer()
	}
	e.entities = ingest.NewEntityAdapter(recognizer)
	if e.vocab == nil {
		e.vocab = question.DefaultVocabulary()
	}
	if e.tokenizer == nil {
		e.tokenizer = ingest.NewSearchTokenizer(ingest.DefaultQuestionWords)
	}
	if e.pairing == nil {
		e.pairing = corpus.BasenamePairing{}
	}
	return e
}

// FromComponents creates an Extractor from loaded configuration. The
// components' index, vocabulary and tokenizer replace those in opts.
func FromComponents(c *config.Components, opts Options) *Extractor {
	opts.Index = c.Index
	opts.Vocabulary = c.Vocabulary
	opts.Tokenizer = c.Tokenizer
	return New(opts)
}

// ErrNoSemanticClasses is returned when class terms are needed but no
// semantic-class directory was configured.
var ErrNoSemanticClasses = fmt.Errorf("semantic classes not configured: %w", internalerr.ErrInvalidConfig)

// semanticIndex resolves the lazy index. A nil index with classes turned
// off is valid and adds no class terms.
func (e *Extractor) semanticIndex() (*ingest.SemanticIndex, error) {
	if e.noClasses {
		return nil, nil
	}
	if e.index == nil {
		return nil, ErrNoSemanticClasses
	}
	idx, err := e.index.Get()
	if err != nil {
		return nil, fmt.Errorf("semantic classes: %w", err)
	}
	return idx, nil
}

func (e *Extractor) pipeline() (*ingest.Pipeline, error) {
	idx, err := e.semanticIndex()
	if err != nil {
		return nil, err
	}
	return ingest.NewPipeline(e.chunks, e.entities, ingest.NewTaggedExtractor(idx), e.tagger), nil
}

// Chunks chunks a raw question and returns its phrase terms.
func (e *Extractor) Chunks(raw string) ([]question.Term, error) {
	annotation, err := e.chunk(raw)
	if err != nil {
		return nil, err
	}
	return e.chunks.Extract(annotation), nil
}

// PreloadedChunks returns the phrase terms of an existing chunk annotation.
func (e *Extractor) PreloadedChunks(annotated string) []question.Term {
	return e.chunks.Extract(annotated)
}

// NameEntities returns the named entities of a raw question.
func (e *Extractor) NameEntities(raw string) ([]question.Term, error) {
	return e.entities.Extract(raw)
}

// Tag returns the word_TAG annotation of a raw question.
func (e *Extractor) Tag(raw string) (string, error) {
	return e.tagger.Tag(raw)
}

// QueryTerms returns the tag, word and semantic-class terms of tagger output.
func (e *Extractor) QueryTerms(tagged string) ([]question.Term, error) {
	idx, err := e.semanticIndex()
	if err != nil {
		return nil, err
	}
	return ingest.NewTaggedExtractor(idx).Extract(tagged), nil
}

// SearchEngineQueryTerms returns the search-engine query terms of text.
func (e *Extractor) SearchEngineQueryTerms(text string) []question.Term {
	return e.tokenizer.Tokenize(text)
}

// QuestionInfo classifies a question that has no preloaded annotation: typ
// and sub are resolved against the vocabulary (sub may be a bare suffix like
// "city" or a full label like "LOC_city"), and the terms are built from a
// live chunking of raw.
func (e *Extractor) QuestionInfo(typ, sub, raw string) (question.Info, error) {
	t, st, err := e.resolve(typ, sub)
	if err != nil {
		return question.Info{}, err
	}

	p, err := e.pipeline()
	if err != nil {
		return question.Info{}, err
	}
	annotation, err := e.chunk(raw)
	if err != nil {
		return question.Info{}, err
	}
	terms, err := p.Process(annotation, raw)
	if err != nil {
		return question.Info{}, err
	}
	return question.NewInfo(t, st, terms, raw)
}

func (e *Extractor) resolve(typ, sub string) (question.Type, question.SubType, error) {
	if st, ok := e.vocab.LookupSubType(sub); ok {
		t, ok := e.vocab.LookupType(typ)
		if !ok {
			return "", "", fmt.Errorf("%q: %w", typ, question.ErrUnknownType)
		}
		if st.Type() != t {
			return "", "", fmt.Errorf("%q is not a subtype of %s: %w", sub, t, question.ErrUnknownSubType)
		}
		return t, st, nil
	}
	return e.vocab.Resolve(typ, sub)
}

func (e *Extractor) chunk(raw string) (string, error) {
	annotation, err := e.chunker.Chunk(raw)
	if err != nil {
		return "", fmt.Errorf("chunk: %w", err)
	}
	return annotation, nil
}

// AllQueryTypes returns every coarse answer type in declaration order.
func (e *Extractor) AllQueryTypes() []question.Type {
	return e.vocab.Types()
}

// AllQuerySubTypes returns every fine answer type in declaration order.
func (e *Extractor) AllQuerySubTypes() []question.SubType {
	return e.vocab.SubTypes()
}

// StopWords reads a plain-text stopword file. A missing or unreadable file
// is logged and yields no words.
func (e *Extractor) StopWords(path string) []string {
	words, err := config.LoadStopWords(path)
	if err != nil {
		e.logger.Warnw("stopword file unavailable", "path", path, "error", err)
		return []string{}
	}
	return words
}

// LoadAnnotated loads an annotated question corpus. See corpus.Loader.Load.
func (e *Extractor) LoadAnnotated(ctx context.Context, corpusPath, prefix, ext, chunkExt string) (*corpus.Result, error) {
	p, err := e.pipeline()
	if err != nil {
		return nil, err
	}
	loader := corpus.NewLoader(p, e.vocab, corpus.WithPairing(e.pairing), corpus.WithLogger(e.logger))
	return loader.Load(ctx, corpusPath, prefix, ext, chunkExt)
}

// SaveRun persists a load result as a new run and returns it.
func (e *Extractor) SaveRun(ctx context.Context, st store.Store, corpusPath string, res *corpus.Result) (store.Run, error) {
	now := time.Now().UTC()
	run := store.Run{
		ID:         store.NewRunID(now),
		CorpusPath: corpusPath,
		CreatedAt:  now,
		Questions:  res.Questions,
		Skipped:    res.Report.Skipped(),
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return store.Run{}, fmt.Errorf("save run: %w", err)
	}
	e.logger.Infow("saved load run", "id", run.ID, "questions", len(run.Questions), "skipped", run.Skipped)
	return run, nil
}
