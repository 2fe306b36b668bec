package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ledger/internal/parsererror"
)

func TestFileRuleStore_LoadMissingFile(t *testing.T) {
	s := NewFileRuleStore(filepath.Join(t.TempDir(), "nope.json"))

	rules, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestFileRuleStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	s := NewFileRuleStore(path)

	require.NoError(t, s.Save(map[string]string{"netflix": "Entertainment"}))

	rules, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"netflix": "Entertainment"}, rules)
}

func TestFileRuleStore_SaveMergesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	s := NewFileRuleStore(path)

	require.NoError(t, s.Save(map[string]string{"netflix": "Entertainment"}))
	require.NoError(t, s.Save(map[string]string{"checkers": "Groceries"}))

	rules, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"netflix":  "Entertainment",
		"checkers": "Groceries",
	}, rules)
}

func TestFileRuleStore_SaveOverwritesConflicts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	s := NewFileRuleStore(path)

	require.NoError(t, s.Save(map[string]string{"netflix": "Entertainment"}))
	require.NoError(t, s.Save(map[string]string{"netflix": "Subscriptions & Media"}))

	rules, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Subscriptions & Media", rules["netflix"])
}

func TestFileRuleStore_SaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "rules.json")
	s := NewFileRuleStore(path)

	require.NoError(t, s.Save(map[string]string{"a": "b"}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileRuleStore_PrettyPrintedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	s := NewFileRuleStore(path)

	require.NoError(t, s.Save(map[string]string{"netflix": "Entertainment"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    ")

	var roundTrip map[string]string
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, "Entertainment", roundTrip["netflix"])
}

func TestFileRuleStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewFileRuleStore(path)
	_, err := s.Load()

	assert.Error(t, err)
}

func TestLoadKeywordOverrides_MissingFile(t *testing.T) {
	config, err := LoadKeywordOverrides(filepath.Join(t.TempDir(), "none.yaml"))

	require.NoError(t, err)
	assert.Empty(t, config.Categories)
	assert.Empty(t, config.SubCategories)
}

func TestLoadKeywordOverrides_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := `subcategories:
  - name: Gym
    keywords:
      - virgin active
      - planet fitness
categories:
  - name: Memberships
    keywords:
      - membership
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadKeywordOverrides(path)

	require.NoError(t, err)
	require.Len(t, config.SubCategories, 1)
	assert.Equal(t, "Gym", config.SubCategories[0].Name)
	assert.Equal(t, []string{"virgin active", "planet fitness"}, config.SubCategories[0].Keywords)
	require.Len(t, config.Categories, 1)
	assert.Equal(t, "Memberships", config.Categories[0].Name)
}

func TestLoadKeywordOverrides_CorruptYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- bad"), 0644))

	_, err := LoadKeywordOverrides(path)

	require.Error(t, err)
	var parseErr *parsererror.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestMockRuleStore(t *testing.T) {
	m := &MockRuleStore{}

	require.NoError(t, m.Save(map[string]string{"a": "1"}))
	assert.Equal(t, 1, m.Saves)

	rules, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "1", rules["a"])

	// Load returns a copy; mutating it does not affect the store.
	rules["a"] = "changed"
	fresh, _ := m.Load()
	assert.Equal(t, "1", fresh["a"])
}
