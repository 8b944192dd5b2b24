package ingest

import (
	"errors"
	"fmt"
)

// ErrMalformedChunk is matched by every *ChunkError.
var ErrMalformedChunk = errors.New("malformed chunk annotation")

const maxChunkDepth = 64

// Chunk is one top-level bracketed group of a chunk annotation,
// e.g. "[NP the capital]". Text is the exact bracketed substring, nested
// groups included.
type Chunk struct {
	Tag   string
	Text  string
	Start int
	End   int
}

// ChunkError reports where a chunk annotation stopped being parseable.
type ChunkError struct {
	Offset int
	Reason string
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformedChunk, e.Offset, e.Reason)
}

func (e *ChunkError) Unwrap() error { return ErrMalformedChunk }

// ParseChunks splits a chunk annotation into its top-level groups:
//
//	annotation := { text | group }
//	group      := "[" TAG { WORD | group } "]"
//
// Text between groups is ignored. A malformed group is skipped: scanning
// resumes after its opening bracket, so later groups are still returned.
// The first *ChunkError is returned alongside every group that parsed.
func ParseChunks(s string) ([]Chunk, error) {
	p := &chunkParser{src: s}
	var (
		chunks   []Chunk
		firstErr error
	)
	for {
		p.skipToGroup()
		if p.eof() {
			return chunks, firstErr
		}
		start := p.pos
		c, err := p.group(0)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			p.pos = start + 1
			continue
		}
		chunks = append(chunks, c)
	}
}

type chunkParser struct {
	src string
	pos int
}

func (p *chunkParser) eof() bool { return p.pos >= len(p.src) }

func (p *chunkParser) peek() byte { return p.src[p.pos] }

// skipToGroup advances to the next '[' outside any group.
func (p *chunkParser) skipToGroup() {
	for !p.eof() && p.peek() != '[' {
		p.pos++
	}
}

func (p *chunkParser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

func (p *chunkParser) word() string {
	start := p.pos
	for !p.eof() {
		b := p.peek()
		if isSpace(b) || b == '[' || b == ']' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *chunkParser) group(depth int) (Chunk, error) {
	start := p.pos
	if depth >= maxChunkDepth {
		return Chunk{}, &ChunkError{Offset: start, Reason: "groups nested too deeply"}
	}
	p.pos++ // '['

	p.skipSpace()
	tag := p.word()
	if tag == "" {
		return Chunk{}, &ChunkError{Offset: start, Reason: "group has no tag"}
	}

	for {
		p.skipSpace()
		if p.eof() {
			return Chunk{}, &ChunkError{Offset: start, Reason: "unterminated group"}
		}
		switch p.peek() {
		case ']':
			p.pos++
			return Chunk{Tag: tag, Text: p.src[start:p.pos], Start: start, End: p.pos}, nil
		case '[':
			if _, err := p.group(depth + 1); err != nil {
				return Chunk{}, err
			}
		default:
			p.word()
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
