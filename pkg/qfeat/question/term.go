// Package question holds the records produced by feature extraction:
// query terms, question records and the closed type/subtype vocabulary.
package question

import "strings"

// Term is a symbolic feature label extracted from a question.
// Terms are compared by value; sequences may contain duplicates.
type Term string

// String returns the label.
func (t Term) String() string { return string(t) }

// Terms wraps each string as a Term, preserving order.
func Terms(values ...string) []Term {
	out := make([]Term, len(values))
	for i, v := range values {
		out[i] = Term(v)
	}
	return out
}

// Strings returns the labels of terms in order.
func Strings(terms []Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = string(t)
	}
	return out
}

// Join renders terms separated by sep.
func Join(terms []Term, sep string) string {
	return strings.Join(Strings(terms), sep)
}
