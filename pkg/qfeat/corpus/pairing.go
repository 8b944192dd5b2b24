package corpus

import (
	"fmt"
	"strings"

	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
)

// Listing is the set of corpus file names selected for a load, each list in
// directory order.
type Listing struct {
	Questions []string
	Chunks    []string
	Ext       string
	ChunkExt  string
}

// Pair is a question file and the chunk file annotating it.
type Pair struct {
	Question string
	Chunk    string
}

// Pairing decides which chunk file annotates which question file.
type Pairing interface {
	Pair(l Listing) ([]Pair, []*PairingError)
}

// PositionalPairing pairs the i-th question file with the i-th chunk file.
// It is only correct when both listings enumerate the same splits in the
// same order.
type PositionalPairing struct{}

// Pair implements Pairing.
func (PositionalPairing) Pair(l Listing) ([]Pair, []*PairingError) {
	n := min(len(l.Questions), len(l.Chunks))
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{Question: l.Questions[i], Chunk: l.Chunks[i]})
	}

	var errs []*PairingError
	for _, q := range l.Questions[n:] {
		errs = append(errs, &PairingError{Question: q, Reason: "no chunk file at this position"})
	}
	for _, c := range l.Chunks[n:] {
		errs = append(errs, &PairingError{Chunk: c, Reason: "no question file at this position"})
	}
	return pairs, errs
}

// BasenamePairing pairs files whose names are equal once the question or
// chunk extension is removed, ignoring case: "train.label" with "train.chunk".
type BasenamePairing struct{}

// Pair implements Pairing.
func (BasenamePairing) Pair(l Listing) ([]Pair, []*PairingError) {
	var errs []*PairingError

	chunks := make(map[string]string, len(l.Chunks))
	for _, c := range l.Chunks {
		key := baseKey(c, l.ChunkExt)
		if prev, dup := chunks[key]; dup {
			errs = append(errs, &PairingError{Chunk: c, Reason: fmt.Sprintf("same base name as %q", prev)})
			continue
		}
		chunks[key] = c
	}

	var pairs []Pair
	used := make(map[string]bool, len(chunks))
	seen := make(map[string]string, len(l.Questions))
	for _, q := range l.Questions {
		key := baseKey(q, l.Ext)
		if prev, dup := seen[key]; dup {
			errs = append(errs, &PairingError{Question: q, Reason: fmt.Sprintf("same base name as %q", prev)})
			continue
		}
		seen[key] = q

		c, ok := chunks[key]
		if !ok {
			errs = append(errs, &PairingError{Question: q, Reason: "no chunk file with the same base name"})
			continue
		}
		used[key] = true
		pairs = append(pairs, Pair{Question: q, Chunk: c})
	}

	for _, c := range l.Chunks {
		key := baseKey(c, l.ChunkExt)
		if chunks[key] == c && !used[key] {
			errs = append(errs, &PairingError{Chunk: c, Reason: "no question file with the same base name"})
		}
	}
	return pairs, errs
}

func baseKey(name, ext string) string {
	lower := strings.ToLower(name)
	return strings.TrimSuffix(lower, strings.ToLower(ext))
}

// PairingByName returns the strategy registered under name:
// "basename" (default for "") or "positional".
func PairingByName(name string) (Pairing, error) {
	switch strings.ToLower(name) {
	case "", "basename":
		return BasenamePairing{}, nil
	case "positional":
		return PositionalPairing{}, nil
	default:
		return nil, fmt.Errorf("unknown pairing strategy %q: %w", name, internalerr.ErrInvalidConfig)
	}
}
