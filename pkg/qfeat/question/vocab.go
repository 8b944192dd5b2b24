package question

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
)

var (
	// ErrUnknownType is returned when a type label is not in the vocabulary.
	ErrUnknownType = fmt.Errorf("unknown question type: %w", internalerr.ErrNotFound)
	// ErrUnknownSubType is returned when a subtype label is not in the vocabulary.
	ErrUnknownSubType = fmt.Errorf("unknown question subtype: %w", internalerr.ErrNotFound)
)

// Type is a coarse expected-answer category, e.g. LOC.
type Type string

// SubType is a fine expected-answer category named <Type>_<suffix>, e.g. LOC_city.
type SubType string

// Type returns the coarse type encoded in the subtype name.
func (s SubType) Type() Type {
	if i := strings.IndexByte(string(s), '_'); i > 0 {
		return Type(s[:i])
	}
	return ""
}

// Suffix returns the part of the name after the type.
func (s SubType) Suffix() string {
	if i := strings.IndexByte(string(s), '_'); i >= 0 {
		return string(s[i+1:])
	}
	return string(s)
}

// Coarse types of the default vocabulary.
const (
	Abbreviation Type = "ABBR"
	Description  Type = "DESC"
	Entity       Type = "ENTY"
	Human        Type = "HUM"
	Location     Type = "LOC"
	Numeric      Type = "NUM"
)

// Vocabulary is a closed set of types and their subtypes. Lookups are
// case-insensitive; results are returned in canonical spelling.
type Vocabulary struct {
	types    []Type
	subTypes map[Type][]SubType
	byType   map[string]Type
	bySub    map[string]SubType
}

// NewVocabulary builds a vocabulary from type → subtype suffixes. Types are
// enumerated in the given order; every key of suffixes must appear in order.
// Keys of suffixes match type names case-insensitively.
func NewVocabulary(order []string, suffixes map[string][]string) (*Vocabulary, error) {
	v := &Vocabulary{
		subTypes: make(map[Type][]SubType),
		byType:   make(map[string]Type),
		bySub:    make(map[string]SubType),
	}
	byKey := make(map[string][]string, len(suffixes))
	for name, list := range suffixes {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := byKey[key]; dup {
			return nil, fmt.Errorf("subtypes for %q given twice: %w", name, internalerr.ErrInvalidConfig)
		}
		byKey[key] = list
	}
	for _, name := range order {
		name = strings.TrimSpace(name)
		if name == "" || strings.Contains(name, "_") {
			return nil, fmt.Errorf("type %q: %w", name, internalerr.ErrInvalidConfig)
		}
		key := strings.ToLower(name)
		if _, dup := v.byType[key]; dup {
			return nil, fmt.Errorf("duplicate type %q: %w", name, internalerr.ErrInvalidConfig)
		}
		t := Type(name)
		v.types = append(v.types, t)
		v.byType[key] = t

		for _, suffix := range byKey[key] {
			suffix = strings.TrimSpace(suffix)
			if suffix == "" {
				return nil, fmt.Errorf("empty subtype of %s: %w", name, internalerr.ErrInvalidConfig)
			}
			st := SubType(name + "_" + suffix)
			subKey := strings.ToLower(string(st))
			if _, dup := v.bySub[subKey]; dup {
				return nil, fmt.Errorf("duplicate subtype %q: %w", st, internalerr.ErrInvalidConfig)
			}
			v.subTypes[t] = append(v.subTypes[t], st)
			v.bySub[subKey] = st
		}
	}
	for key := range byKey {
		if _, ok := v.byType[key]; !ok {
			return nil, fmt.Errorf("subtypes for undeclared type %q: %w", key, internalerr.ErrInvalidConfig)
		}
	}
	return v, nil
}

// LookupType resolves a type label case-insensitively.
func (v *Vocabulary) LookupType(name string) (Type, bool) {
	t, ok := v.byType[strings.ToLower(name)]
	return t, ok
}

// LookupSubType resolves a fully-qualified subtype label case-insensitively.
func (v *Vocabulary) LookupSubType(name string) (SubType, bool) {
	st, ok := v.bySub[strings.ToLower(name)]
	return st, ok
}

// Resolve maps a header's type and subtype suffix to canonical labels.
// The fully-qualified subtype is formed as type + "_" + suffix.
func (v *Vocabulary) Resolve(typ, suffix string) (Type, SubType, error) {
	t, ok := v.LookupType(typ)
	if !ok {
		return "", "", fmt.Errorf("%q: %w", typ, ErrUnknownType)
	}
	st, ok := v.LookupSubType(fmt.Sprintf("%s_%s", typ, suffix))
	if !ok {
		return "", "", fmt.Errorf("%q: %w", typ+"_"+suffix, ErrUnknownSubType)
	}
	return t, st, nil
}

// Types returns every type in declaration order.
func (v *Vocabulary) Types() []Type {
	return append([]Type(nil), v.types...)
}

// SubTypes returns every subtype, grouped by type in declaration order.
func (v *Vocabulary) SubTypes() []SubType {
	var out []SubType
	for _, t := range v.types {
		out = append(out, v.subTypes[t]...)
	}
	return out
}

// SubTypesOf returns the subtypes of t.
func (v *Vocabulary) SubTypesOf(t Type) []SubType {
	return append([]SubType(nil), v.subTypes[t]...)
}

// IsUnresolved reports whether err came from a failed vocabulary lookup.
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrUnknownType) || errors.Is(err, ErrUnknownSubType)
}

var defaultOrder = []string{"ABBR", "DESC", "ENTY", "HUM", "LOC", "NUM"}

var defaultSuffixes = map[string][]string{
	"ABBR": {"abb", "exp"},
	"DESC": {"def", "desc", "manner", "reason"},
	"ENTY": {
		"animal", "body", "color", "cremat", "currency", "dismed", "event",
		"food", "instru", "lang", "letter", "other", "plant", "product",
		"religion", "sport", "substance", "symbol", "techmeth", "termeq",
		"veh", "word",
	},
	"HUM": {"desc", "gr", "ind", "title"},
	"LOC": {"city", "country", "mount", "other", "state"},
	"NUM": {
		"code", "count", "date", "dist", "money", "ord", "other", "perc",
		"period", "speed", "temp", "volsize", "weight",
	},
}

// DefaultVocabulary returns the six coarse and fifty fine answer types
// used by the annotated question corpora.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(defaultOrder, defaultSuffixes)
	if err != nil {
		panic(err)
	}
	return v
}
