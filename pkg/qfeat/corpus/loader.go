package corpus

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/cognicore/qfeat/internal/log"
	"github.com/cognicore/qfeat/pkg/qfeat/ingest"
	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// ErrMissingCorpusPath is returned by Load when no corpus directory is given.
var ErrMissingCorpusPath = fmt.Errorf("corpus path is missing: %w", internalerr.ErrInvalidConfig)

// Loader reads annotated question corpora: question files with one
// "<type>:<subtype> <question>" record per line, and chunk files holding the
// chunk annotation of the same line.
type Loader struct {
	pipeline *ingest.Pipeline
	vocab    *question.Vocabulary
	pairing  Pairing
	logger   *zap.SugaredLogger
}

// Option configures a Loader.
type Option func(*Loader)

// WithPairing sets how question files are matched to chunk files.
// The default is BasenamePairing.
func WithPairing(p Pairing) Option {
	return func(l *Loader) { l.pairing = p }
}

// WithLogger sets the logger used for per-file progress and skipped records.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a loader that builds terms with pipeline and resolves
// labels through vocab (question.DefaultVocabulary when nil).
func NewLoader(pipeline *ingest.Pipeline, vocab *question.Vocabulary, opts ...Option) *Loader {
	l := &Loader{
		pipeline: pipeline,
		vocab:    vocab,
		pairing:  BasenamePairing{},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.vocab == nil {
		l.vocab = question.DefaultVocabulary()
	}
	l.logger = log.OrDefault(l.logger)
	return l
}

// Load reads every question file in corpusPath named prefix*ext together with
// its chunk file named prefix*chunkExt. Name matching ignores case.
//
// Only a missing corpusPath or an unusable extension pair fails the call.
// Unreadable files, unpaired files and bad records are recorded in the
// result's Report and skipped. Cancellation is checked between files and
// returns the records read so far.
func (l *Loader) Load(ctx context.Context, corpusPath, prefix, ext, chunkExt string) (*Result, error) {
	if strings.TrimSpace(corpusPath) == "" {
		return nil, ErrMissingCorpusPath
	}
	if strings.EqualFold(ext, chunkExt) {
		return nil, fmt.Errorf("question and chunk extensions are both %q: %w", ext, internalerr.ErrInvalidConfig)
	}

	res := &Result{}
	listing, statErrs, err := listCorpus(corpusPath, prefix, ext, chunkExt)
	if err != nil {
		fe := &FileError{Path: corpusPath, Op: "list", Err: err}
		res.Report.FileErrors = append(res.Report.FileErrors, fe)
		l.logger.Errorf("corpus not found: %s/%s*%s: %v", corpusPath, prefix, ext, err)
		return res, nil
	}

	for _, fe := range statErrs {
		res.Report.FileErrors = append(res.Report.FileErrors, fe)
		l.logger.Errorf("unable to read corpus file %s: %v", fe.Path, fe.Err)
	}

	pairs, pairErrs := l.pairing.Pair(listing)
	for _, pe := range pairErrs {
		l.logger.Warnf("corpus %s: %v", corpusPath, pe)
	}
	res.Report.PairingErrors = append(res.Report.PairingErrors, pairErrs...)

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		l.loadPair(corpusPath, pair, res)
	}

	if !res.Report.Clean() {
		l.logger.Warnf("corpus %s: %d records and %d files skipped",
			corpusPath, res.Report.Skipped(), res.Report.SkippedFiles())
	}
	return res, nil
}

func (l *Loader) loadPair(dir string, pair Pair, res *Result) {
	qPath := filepath.Join(dir, pair.Question)
	cPath := filepath.Join(dir, pair.Chunk)

	lines, err := readLines(qPath)
	if err != nil {
		l.fileError(res, qPath, err)
		return
	}
	chunkLines, err := readLines(cPath)
	if err != nil {
		l.fileError(res, cPath, err)
		return
	}

	if len(lines) != len(chunkLines) {
		pe := &PairingError{
			Question: pair.Question,
			Chunk:    pair.Chunk,
			Reason:   fmt.Sprintf("%d question lines but %d chunk lines", len(lines), len(chunkLines)),
		}
		res.Report.PairingErrors = append(res.Report.PairingErrors, pe)
		l.logger.Errorf("corpus %s: %v", dir, pe)
		return
	}

	summary := FileSummary{Question: pair.Question, Chunk: pair.Chunk}
	for j, line := range lines {
		info, err := l.record(line, chunkLines[j])
		if err != nil {
			pe := &ParseError{File: pair.Question, Line: j + 1, Text: line, Err: err}
			res.Report.ParseErrors = append(res.Report.ParseErrors, pe)
			l.logger.Warnf("skipped record: %v", pe)
			summary.Skipped++
			continue
		}
		res.Questions = append(res.Questions, info)
		summary.Questions++
	}

	res.Report.Files = append(res.Report.Files, summary)
	l.logger.Infof("data set: %s [%d questions]", pair.Question, summary.Questions)
}

func (l *Loader) record(line, chunks string) (question.Info, error) {
	h, err := ParseHeader(line)
	if err != nil {
		return question.Info{}, err
	}
	typ, sub, err := h.Resolve(l.vocab)
	if err != nil {
		return question.Info{}, err
	}
	terms, err := l.pipeline.Process(chunks, h.Question)
	if err != nil {
		return question.Info{}, err
	}
	return question.NewInfo(typ, sub, terms, h.Question)
}

func (l *Loader) fileError(res *Result, path string, err error) {
	res.Report.FileErrors = append(res.Report.FileErrors, &FileError{Path: path, Op: "read", Err: err})
	l.logger.Errorf("unable to read corpus file %s: %v", path, err)
}

// listCorpus selects the question and chunk files of a corpus directory.
// A name matching both patterns goes to the one with the longer extension,
// so ".label" and ".chunk.label" can live side by side. Links are followed;
// a matching name that cannot be resolved is returned as a *FileError.
func listCorpus(dir, prefix, ext, chunkExt string) (Listing, []*FileError, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, nil, err
	}

	qPattern := namePattern(prefix, ext)
	cPattern := namePattern(prefix, chunkExt)
	chunkWins := len(chunkExt) > len(ext)

	listing := Listing{Ext: ext, ChunkExt: chunkExt}
	var statErrs []*FileError
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		isQuestion, err := doublestar.Match(qPattern, name)
		if err != nil {
			return Listing{}, nil, err
		}
		isChunk, err := doublestar.Match(cPattern, name)
		if err != nil {
			return Listing{}, nil, err
		}
		if !isQuestion && !isChunk {
			continue
		}
		if isQuestion && isChunk {
			isQuestion, isChunk = !chunkWins, chunkWins
		}

		path := filepath.Join(dir, entry.Name())
		regular, err := isRegularFile(entry, path)
		if err != nil {
			statErrs = append(statErrs, &FileError{Path: path, Op: "stat", Err: err})
			continue
		}
		if !regular {
			continue
		}

		switch {
		case isQuestion:
			listing.Questions = append(listing.Questions, entry.Name())
		case isChunk:
			listing.Chunks = append(listing.Chunks, entry.Name())
		}
	}
	return listing, statErrs, nil
}

// isRegularFile reports whether entry is, or links to, a regular file.
func isRegularFile(entry os.DirEntry, path string) (bool, error) {
	if entry.Type().IsRegular() {
		return true, nil
	}
	if entry.IsDir() {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func namePattern(prefix, ext string) string {
	return escapeGlob(strings.ToLower(prefix)) + "*" + escapeGlob(strings.ToLower(ext))
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

const utf8BOM = "\uFEFF"

// readLines returns the lines of path without terminators or a leading
// byte-order mark. Trailing blank lines are dropped so a final newline does
// not count as a record.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(lines) > 0 {
		lines[0] = strings.TrimPrefix(lines[0], utf8BOM)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
