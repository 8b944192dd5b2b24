package ingest

import (
	"errors"
	"fmt"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// Tagger produces whitespace-separated word_TAG tokens for raw text.
type Tagger interface {
	Tag(raw string) (string, error)
}

// Chunker produces a bracketed phrase-chunk annotation for raw text.
type Chunker interface {
	Chunk(raw string) (string, error)
}

// Pipeline fuses the term sources of one question:
// chunk terms → entity terms → tagged terms
type Pipeline struct {
	chunks   *ChunkExtractor
	entities *EntityAdapter
	tagged   *TaggedExtractor
	tagger   Tagger
}

// NewPipeline creates a pipeline with the given components
func NewPipeline(chunks *ChunkExtractor, entities *EntityAdapter, tagged *TaggedExtractor, tagger Tagger) *Pipeline {
	if chunks == nil {
		chunks = NewChunkExtractor()
	}
	if entities == nil {
		entities = NewEntityAdapter(nil)
	}
	if tagged == nil {
		tagged = NewTaggedExtractor(nil)
	}
	return &Pipeline{
		chunks:   chunks,
		entities: entities,
		tagged:   tagged,
		tagger:   tagger,
	}
}

// ErrNoTagger is returned by Process when the pipeline has no tagger.
var ErrNoTagger = errors.New("pipeline has no tagger")

// Process builds the ordered terms of a question from its chunk annotation
// and its raw text.
func (p *Pipeline) Process(chunkAnnotation, raw string) ([]question.Term, error) {
	if p.tagger == nil {
		return nil, ErrNoTagger
	}

	// 1. First question/noun/verb phrases
	terms := p.chunks.Extract(chunkAnnotation)

	// 2. Named entities
	entities, err := p.entities.Extract(raw)
	if err != nil {
		return nil, err
	}
	terms = append(terms, entities...)

	// 3. Tagged words and their semantic classes
	tagged, err := p.tagger.Tag(raw)
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	terms = append(terms, p.tagged.Extract(tagged)...)

	return terms, nil
}

// Chunks exposes the chunk extractor.
func (p *Pipeline) Chunks() *ChunkExtractor { return p.chunks }

// Entities exposes the entity adapter.
func (p *Pipeline) Entities() *EntityAdapter { return p.entities }

// Tagged exposes the tagged-term extractor.
func (p *Pipeline) Tagged() *TaggedExtractor { return p.tagged }
