package corpus

import (
	"errors"
	"fmt"

	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// ParseError reports a question-file record that produced no QuestionInfo.
type ParseError struct {
	File string
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FileError reports a corpus file or directory that could not be read.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// PairingError reports a question file and chunk file that could not be
// aligned. Either name may be empty when the counterpart is missing.
type PairingError struct {
	Question string
	Chunk    string
	Reason   string
}

func (e *PairingError) Error() string {
	return fmt.Sprintf("pair question=%q chunk=%q: %s", e.Question, e.Chunk, e.Reason)
}

func (e *PairingError) Unwrap() error { return internalerr.ErrPairing }

// FileSummary describes one processed question/chunk file pair.
type FileSummary struct {
	Question  string
	Chunk     string
	Questions int
	Skipped   int
}

// Report collects everything a load skipped.
type Report struct {
	Files         []FileSummary
	ParseErrors   []*ParseError
	FileErrors    []*FileError
	PairingErrors []*PairingError
}

// Skipped returns the number of records excluded by parse errors.
func (r *Report) Skipped() int { return len(r.ParseErrors) }

// SkippedFiles returns the number of files that contributed nothing because
// of read or pairing failures.
func (r *Report) SkippedFiles() int { return len(r.FileErrors) + len(r.PairingErrors) }

// Clean reports whether nothing was skipped.
func (r *Report) Clean() bool {
	return r.Skipped() == 0 && r.SkippedFiles() == 0
}

// Err joins every recorded problem, or returns nil for a clean load.
func (r *Report) Err() error {
	var errs []error
	for _, e := range r.FileErrors {
		errs = append(errs, e)
	}
	for _, e := range r.PairingErrors {
		errs = append(errs, e)
	}
	for _, e := range r.ParseErrors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Result is the outcome of a corpus load: the records that parsed plus the
// report of those that did not.
type Result struct {
	Questions []question.Info
	Report    Report
}
