// Package store persists the learned custom categorization rules and loads
// optional keyword-table overrides.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"statement-ledger/internal/fileutils"
	"statement-ledger/internal/logging"
	"statement-ledger/internal/models"
	"statement-ledger/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleStore is the persistence capability for custom rules: a durable
// mapping of lowercase noise-stripped grouping keys to subcategory labels.
type RuleStore interface {
	Load() (map[string]string, error)
	Save(rules map[string]string) error
}

// FileRuleStore keeps the rule mapping in a pretty-indented JSON file.
// Saves are read-merge-write under a mutex so concurrent confirmations
// never lose each other's rules.
type FileRuleStore struct {
	Path string

	mu sync.Mutex
}

// NewFileRuleStore creates a store backed by the JSON file at path.
func NewFileRuleStore(path string) *FileRuleStore {
	return &FileRuleStore{Path: path}
}

// Load reads the rule mapping. A missing file yields an empty mapping, not
// an error.
func (s *FileRuleStore) Load() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileRuleStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Custom rules file not found, starting empty",
				logging.Field{Key: "file", Value: s.Path})
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error reading custom rules file: %w", err)
	}

	var rules map[string]string
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("error parsing custom rules file: %w", err)
	}
	if rules == nil {
		rules = map[string]string{}
	}

	log.Debug("Loaded custom rules",
		logging.Field{Key: "file", Value: s.Path},
		logging.Field{Key: "count", Value: len(rules)})
	return rules, nil
}

// Save merges rules over the current on-disk mapping and rewrites the file.
// Existing keys absent from rules are preserved; matching keys are
// overwritten by the new value.
func (s *FileRuleStore) Save(rules map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := s.load()
	if err != nil {
		return err
	}
	for key, label := range rules {
		merged[key] = label
	}

	data, err := json.MarshalIndent(merged, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshaling custom rules: %w", err)
	}

	if err := fileutils.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("error writing custom rules file: %w", err)
	}

	log.Debug("Saved custom rules",
		logging.Field{Key: "file", Value: s.Path},
		logging.Field{Key: "count", Value: len(merged)})
	return nil
}

// LoadKeywordOverrides reads an optional YAML file extending the built-in
// keyword tables. A missing file yields empty overrides, not an error.
func LoadKeywordOverrides(path string) (models.KeywordConfig, error) {
	var config models.KeywordConfig

	if !fileutils.FileExists(path) {
		return config, nil
	}
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("error reading keyword overrides file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, &parsererror.ParseError{Stage: "keyword overrides", Value: path, Err: err}
	}

	log.Debug("Loaded keyword overrides",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "categories", Value: len(config.Categories)},
		logging.Field{Key: "subcategories", Value: len(config.SubCategories)})
	return config, nil
}
