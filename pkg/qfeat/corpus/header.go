package corpus

import (
	"fmt"

	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// ErrHeaderSyntax is matched by every header grammar failure.
var ErrHeaderSyntax = fmt.Errorf("malformed question header: %w", internalerr.ErrInvalidInput)

// Header is a parsed question-file record: "<type>:<subtype> <question>".
type Header struct {
	Type     string
	SubType  string
	Question string
}

// ParseHeader parses one question-file record. Type and subtype are runs of
// at least two ASCII letters joined by a colon; a single space separates them
// from the question, which is everything that follows, line breaks included.
func ParseHeader(record string) (Header, error) {
	pos := 0

	typ := letters(record, &pos)
	if len(typ) < 2 {
		return Header{}, headerError(pos, "type must be at least two letters")
	}
	if pos >= len(record) || record[pos] != ':' {
		return Header{}, headerError(pos, "expected ':' after type")
	}
	pos++

	sub := letters(record, &pos)
	if len(sub) < 2 {
		return Header{}, headerError(pos, "subtype must be at least two letters")
	}
	if pos >= len(record) || record[pos] != ' ' {
		return Header{}, headerError(pos, "expected ' ' after subtype")
	}
	pos++

	return Header{Type: typ, SubType: sub, Question: record[pos:]}, nil
}

// Resolve maps the header labels through the vocabulary.
func (h Header) Resolve(v *question.Vocabulary) (question.Type, question.SubType, error) {
	return v.Resolve(h.Type, h.SubType)
}

func letters(s string, pos *int) string {
	start := *pos
	for *pos < len(s) {
		b := s[*pos]
		if !('a' <= b && b <= 'z') && !('A' <= b && b <= 'Z') {
			break
		}
		*pos++
	}
	return s[start:*pos]
}

func headerError(offset int, reason string) error {
	return fmt.Errorf("%w: column %d: %s", ErrHeaderSyntax, offset+1, reason)
}
