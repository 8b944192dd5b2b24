package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
	"github.com/cognicore/qfeat/pkg/qfeat/store"
)

var _ store.Store = (*Store)(nil)

func mustInfo(t *testing.T, typ question.Type, sub question.SubType, raw string, terms ...string) question.Info {
	t.Helper()
	info, err := question.NewInfo(typ, sub, question.Terms(terms...), raw)
	if err != nil {
		t.Fatalf("NewInfo: %v", err)
	}
	return info
}

func TestSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	s := New()

	run := store.Run{
		ID:         store.NewRunID(time.Now()),
		CorpusPath: "/data/trec",
		CreatedAt:  time.Now(),
		Questions: []question.Info{
			mustInfo(t, "LOC", "LOC_city", "What city is the capital of France", "[NP What city]", "France"),
			mustInfo(t, "HUM", "HUM_ind", "Who wrote Hamlet", "[NP Who]", "Hamlet"),
		},
		Skipped: 1,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	// Mutating the caller's slice must not leak into the store
	run.Questions[0] = run.Questions[1]

	got, ok, err := s.GetRun(ctx, run.ID)
	if err != nil || !ok {
		t.Fatalf("GetRun: ok=%v err=%v", ok, err)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got.Questions))
	}
	if got.Questions[0].SubType() != "LOC_city" {
		t.Errorf("expected first question LOC_city, got %s", got.Questions[0].SubType())
	}
	if got.Skipped != 1 || got.CorpusPath != "/data/trec" {
		t.Errorf("unexpected run fields: %+v", got)
	}
}

func TestGetRunMissing(t *testing.T) {
	_, ok, err := New().GetRun(context.Background(), "nope")
	if err != nil || ok {
		t.Fatalf("expected not found, got ok=%v err=%v", ok, err)
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	err := New().SaveRun(context.Background(), store.Run{})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	base := time.Now()
	var ids []string
	for i := 0; i < 3; i++ {
		id := store.NewRunID(base.Add(time.Duration(i) * time.Second))
		ids = append(ids, id)
		if err := s.SaveRun(ctx, store.Run{ID: id, CreatedAt: base}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}

	all, _ := s.ListRuns(ctx, 0)
	if len(all) != 3 {
		t.Errorf("expected all 3 runs, got %d", len(all))
	}
}

func TestQuestionsBySubType(t *testing.T) {
	ctx := context.Background()
	s := New()

	run := store.Run{
		ID: "r1",
		Questions: []question.Info{
			mustInfo(t, "LOC", "LOC_city", "What city hosts the Louvre"),
			mustInfo(t, "NUM", "NUM_date", "When did WWII end"),
			mustInfo(t, "LOC", "LOC_city", "Which city is the largest"),
		},
	}
	s.SaveRun(ctx, run)

	got, err := s.QuestionsBySubType(ctx, "r1", "LOC_city")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 LOC_city questions, got %d", len(got))
	}
	if got[1].Raw() != "Which city is the largest" {
		t.Errorf("unexpected order: %q", got[1].Raw())
	}

	if _, err := s.QuestionsBySubType(ctx, "missing", "LOC_city"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
