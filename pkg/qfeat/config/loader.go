package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/qfeat/internal/log"
	"github.com/cognicore/qfeat/pkg/qfeat/ingest"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	SettingsPath   string
	StoplistPath   string
	VocabularyPath string
	Logger         *zap.SugaredLogger
}

// Components holds all loaded configuration components
type Components struct {
	Settings   Settings
	Index      *ingest.LazySemanticIndex
	Vocabulary *question.Vocabulary
	Tokenizer  *ingest.SearchTokenizer
}

// Load reads all configuration files and returns initialized components.
// The semantic-class index is not read here; it loads on first Get from the
// directory named by SEMANTIC_CLASS_PATH. When that key is unset, Get fails
// with ErrInvalidConfig.
func (l *Loader) Load() (*Components, error) {
	logger := log.OrDefault(l.Logger)
	comp := &Components{}

	// Load settings
	settings, err := LoadSettings(l.SettingsPath)
	if err != nil {
		return nil, err
	}
	comp.Settings = settings

	dir, _ := settings.Get(SemanticClassPathKey)
	if dir == "" {
		logger.Warnf("%s is not set; semantic-class lookups will fail", SemanticClassPathKey)
	}
	comp.Index = ingest.NewLazySemanticIndex(dir, logger)

	// Load stoplist
	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Tokenizer = ingest.NewSearchTokenizer(stoplist.Terms)
	} else {
		comp.Tokenizer = ingest.NewSearchTokenizer(ingest.DefaultQuestionWords)
	}

	// Load vocabulary
	if l.VocabularyPath != "" {
		vocab, err := LoadVocabulary(l.VocabularyPath)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary: %w", err)
		}
		comp.Vocabulary = vocab
	} else {
		comp.Vocabulary = question.DefaultVocabulary()
	}

	return comp, nil
}
