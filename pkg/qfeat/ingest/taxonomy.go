package ingest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/qfeat/internal/log"
	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
)

// SemanticIndex maps a lowercased word to the semantic classes it belongs to.
// Labels keep the order in which they were added and may repeat.
// An index is read-only once built.
type SemanticIndex struct {
	classes map[string][]string
}

// NewSemanticIndex creates an index from word → class labels.
// Words are lowercased; label order is kept.
func NewSemanticIndex(classes map[string][]string) *SemanticIndex {
	caser := cases.Lower(language.Und)
	idx := &SemanticIndex{classes: make(map[string][]string, len(classes))}
	for word, labels := range classes {
		key := caser.String(word)
		idx.classes[key] = append(idx.classes[key], labels...)
	}
	return idx
}

// LoadSemanticClasses builds an index from a directory of word lists.
// Every regular file, or link to one, is one class named after the file;
// every non-blank line is a member word. Files are visited in os.ReadDir
// order (sorted by name), which fixes the label order for words listed in
// several files.
//
// A missing or unlistable directory is a configuration error. A file that
// cannot be read, or a dangling link, is logged and skipped.
func LoadSemanticClasses(dir string, logger *zap.SugaredLogger) (*SemanticIndex, error) {
	logger = log.OrDefault(logger)
	if dir == "" {
		return nil, fmt.Errorf("load semantic classes: directory not set: %w", internalerr.ErrInvalidConfig)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load semantic classes from %s: %v: %w", dir, err, internalerr.ErrInvalidConfig)
	}

	caser := cases.Lower(language.Und)
	idx := &SemanticIndex{classes: make(map[string][]string)}
	for _, entry := range entries {
		class := entry.Name()
		path := filepath.Join(dir, class)
		regular, err := isRegularFile(entry, path)
		if err != nil {
			logger.Warnf("semantic class %s skipped: %v", path, err)
			continue
		}
		if !regular {
			continue
		}
		if err := idx.addClassFile(path, class, caser); err != nil {
			logger.Warnf("semantic class %s skipped: %v", path, err)
		}
	}

	logger.Debugf("loaded %d semantic-class words from %s", len(idx.classes), dir)
	return idx, nil
}

// isRegularFile reports whether entry is, or links to, a regular file.
// Links are followed, so a dangling link is an error.
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

func (s *SemanticIndex) addClassFile(path, class string, caser cases.Caser) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Collect first so a read failure leaves the index untouched.
	var words []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		word := caser.String(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	for _, w := range words {
		s.classes[w] = append(s.classes[w], class)
	}
	return nil
}

// Lookup returns the class labels of word, matched case-insensitively.
func (s *SemanticIndex) Lookup(word string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	labels, ok := s.classes[cases.Lower(language.Und).String(word)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), labels...), true
}

// Len returns the number of distinct words.
func (s *SemanticIndex) Len() int {
	if s == nil {
		return 0
	}
	return len(s.classes)
}

// LazySemanticIndex loads a SemanticIndex on first use. Concurrent callers
// share one load; its result, including a failure, is kept for the lifetime
// of the value.
type LazySemanticIndex struct {
	dir    string
	logger *zap.SugaredLogger

	once  sync.Once
	index *SemanticIndex
	err   error
}

// NewLazySemanticIndex returns a loader for dir.
func NewLazySemanticIndex(dir string, logger *zap.SugaredLogger) *LazySemanticIndex {
	return &LazySemanticIndex{dir: dir, logger: logger}
}

// Get returns the index, loading it on the first call.
func (l *LazySemanticIndex) Get() (*SemanticIndex, error) {
	l.once.Do(func() {
		l.index, l.err = LoadSemanticClasses(l.dir, l.logger)
	})
	return l.index, l.err
}

// Dir returns the directory the index is loaded from.
func (l *LazySemanticIndex) Dir() string { return l.dir }
