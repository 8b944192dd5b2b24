package config

import (
	"bufio"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/qfeat/pkg/qfeat/ingest"
	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// LoadStopWords reads a plain-text stopword file: every word-character run
// on every line is a stopword, in file order.
func LoadStopWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, ingest.WordRuns(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Vocabulary represents the question type configuration
//
// Format:
//
//	types:
//	  - name: LOC
//	    subtypes: [city, country, mount, other, state]
//	  - name: NUM
//	    subtypes: [date, count]
type Vocabulary struct {
	Types []struct {
		Name     string   `yaml:"name"`
		SubTypes []string `yaml:"subtypes"`
	} `yaml:"types"`
}

// LoadVocabulary loads the closed question type vocabulary from a YAML file
func LoadVocabulary(path string) (*question.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Vocabulary
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Types) == 0 {
		return nil, fmt.Errorf("vocabulary %s declares no types: %w", path, internalerr.ErrInvalidConfig)
	}

	order := make([]string, 0, len(cfg.Types))
	suffixes := make(map[string][]string, len(cfg.Types))
	for _, t := range cfg.Types {
		order = append(order, t.Name)
		suffixes[t.Name] = t.SubTypes
	}
	return question.NewVocabulary(order, suffixes)
}
