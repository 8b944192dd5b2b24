package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// Store persists annotated-corpus load runs for downstream classifier training
type Store interface {
	Close() error

	// SaveRun inserts a run, replacing any run with the same ID.
	SaveRun(ctx context.Context, r Run) error
	// GetRun returns the run with its questions in load order.
	GetRun(ctx context.Context, id string) (Run, bool, error)
	// ListRuns returns up to limit run summaries, newest first. A limit of
	// zero or less returns all runs.
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	// QuestionsBySubType returns the questions of a run labelled st.
	QuestionsBySubType(ctx context.Context, id string, st question.SubType) ([]question.Info, error)
}

// Run is one load of an annotated corpus
type Run struct {
	ID         string
	CorpusPath string
	CreatedAt  time.Time
	Questions  []question.Info
	Skipped    int // records excluded by parse errors; see corpus.Report.Skipped
}

// RunSummary describes a stored run without its questions
type RunSummary struct {
	ID         string
	CorpusPath string
	CreatedAt  time.Time
	Questions  int
	Skipped    int
}

// Summary returns the summary of r.
func (r Run) Summary() RunSummary {
	return RunSummary{
		ID:         r.ID,
		CorpusPath: r.CorpusPath,
		CreatedAt:  r.CreatedAt,
		Questions:  len(r.Questions),
		Skipped:    r.Skipped,
	}
}

var (
	idMu    sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a ULID for a run created at t. IDs from one process sort
// in creation order.
func NewRunID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
