package question

import (
	"fmt"
	"strings"

	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
)

// Info is an annotated question: its expected answer type, subtype,
// extracted terms and the original text. An Info is never mutated after
// construction.
type Info struct {
	typ     Type
	subType SubType
	terms   []Term
	raw     string
}

// NewInfo builds a record. The subtype must belong to typ.
// The terms slice is copied.
func NewInfo(typ Type, subType SubType, terms []Term, raw string) (Info, error) {
	info := Info{
		typ:     typ,
		subType: subType,
		terms:   append([]Term(nil), terms...),
		raw:     raw,
	}
	if err := info.Validate(); err != nil {
		return Info{}, err
	}
	return info, nil
}

// Validate checks if the record has required fields
func (i Info) Validate() error {
	if i.typ == "" {
		return fmt.Errorf("question type is required: %w", internalerr.ErrInvalidInput)
	}
	if i.subType == "" {
		return fmt.Errorf("question subtype is required: %w", internalerr.ErrInvalidInput)
	}
	if i.subType.Type() != i.typ {
		return fmt.Errorf("subtype %s does not belong to type %s: %w", i.subType, i.typ, internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(i.raw) == "" {
		return fmt.Errorf("question text is required: %w", internalerr.ErrInvalidInput)
	}
	return nil
}

// Type returns the coarse answer type.
func (i Info) Type() Type { return i.typ }

// SubType returns the fine answer type.
func (i Info) SubType() SubType { return i.subType }

// Terms returns a copy of the extracted terms in fusion order.
func (i Info) Terms() []Term { return append([]Term(nil), i.terms...) }

// Raw returns the question text.
func (i Info) Raw() string { return i.raw }

// Equal reports whether two records carry the same values.
func (i Info) Equal(o Info) bool {
	if i.typ != o.typ || i.subType != o.subType || i.raw != o.raw || len(i.terms) != len(o.terms) {
		return false
	}
	for k := range i.terms {
		if i.terms[k] != o.terms[k] {
			return false
		}
	}
	return true
}

func (i Info) String() string {
	return fmt.Sprintf("%s %s [%s] %q", i.typ, i.subType, Join(i.terms, ", "), i.raw)
}
