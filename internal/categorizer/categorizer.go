// Package categorizer assigns category and subcategory labels to reconciled
// transactions using a fixed rule cascade:
//  1. persisted custom rules, learned from confirmed reviews
//  2. the static subcategory keyword table
//  3. the static main-category keyword table
//
// plus a direction-based override for transfer-type main categories.
//
// Matching is always case-insensitive substring containment; rule and
// keyword order is significant and first match wins at each tier.
package categorizer

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"statement-ledger/internal/logging"
	"statement-ledger/internal/models"
	"statement-ledger/internal/store"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// effectivePattern strips the "(effective DD/MM/YYYY)" annotation some
// statements append to descriptions.
var effectivePattern = regexp.MustCompile(`(?i)\(effective\s*\d{1,2}/\d{2}/\d{4}\s*\)`)

// Categorizer applies the rule cascade. It holds the custom rules loaded
// from its store and tracks modifications with a dirty flag so SaveRules
// only touches disk when something changed.
type Categorizer struct {
	customRules map[string]string
	customKeys  []string // sorted, for deterministic first-match order
	mainTable   []models.KeywordRule
	subTable    []models.KeywordRule

	mu    sync.RWMutex
	dirty bool

	store  store.RuleStore
	logger logging.Logger
}

// NewCategorizer creates a Categorizer with the given rule store and logger
// and loads the persisted custom rules. A store load failure degrades to an
// empty rule set with a warning; the static tables still apply.
func NewCategorizer(ruleStore store.RuleStore, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}

	c := &Categorizer{
		customRules: make(map[string]string),
		mainTable:   models.MainCategories,
		subTable:    models.SubCategories,
		store:       ruleStore,
		logger:      logger,
	}

	rules, err := ruleStore.Load()
	if err != nil {
		c.logger.WithError(err).Warn("Failed to load custom rules")
	} else {
		for key, label := range rules {
			// Keys are normalized lowercase for case-insensitive lookup.
			c.customRules[strings.ToLower(key)] = label
		}
	}
	c.rebuildKeys()

	return c
}

// ApplyKeywordOverrides appends user-supplied keyword rules after the
// built-in tables, so built-in precedence is preserved.
func (c *Categorizer) ApplyKeywordOverrides(config models.KeywordConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mainTable = append(c.mainTable, config.Categories...)
	c.subTable = append(c.subTable, config.SubCategories...)
}

// Categorize labels every transaction in place and returns the slice.
func (c *Categorizer) Categorize(txns []models.Transaction) []models.Transaction {
	for i := range txns {
		c.categorizeOne(&txns[i])
	}
	return txns
}

func (c *Categorizer) categorizeOne(tx *models.Transaction) {
	// The stripped description becomes canonical from here on.
	tx.Description = strings.TrimSpace(effectivePattern.ReplaceAllString(tx.Description, ""))
	descLower := strings.ToLower(tx.Description)

	if strings.Contains(descLower, strings.ToLower(models.OpeningBalanceMarker)) {
		tx.Category = models.CategoryBalance
		tx.SubCategory = models.SubCategoryOpeningBalance
		return
	}

	subAssigned := false

	if label, found := c.matchCustomRule(descLower); found {
		tx.SubCategory = label
		subAssigned = true
	}

	if !subAssigned {
		if name, found := matchKeywordTable(c.subTable, descLower); found {
			tx.SubCategory = name
			subAssigned = true
		}
	}

	tx.Category = models.CategoryOther
	if name, found := matchKeywordTable(c.mainTable, descLower); found {
		tx.Category = name
	}

	// Transfer-type categories resolve the subcategory from the reconciled
	// direction, superseding any keyword or custom-rule hit.
	if tx.Category == models.CategoryDigitalTransfer || tx.Category == models.CategoryCreditTransfer {
		if tx.IsDebit() {
			tx.SubCategory = models.SubCategoryTransferOut
			subAssigned = true
		} else if tx.IsCredit() {
			tx.SubCategory = models.SubCategoryTransferIn
			subAssigned = true
		}
	}

	if !subAssigned {
		tx.SubCategory = models.SubCategoryUncategorized
	}
}

func (c *Categorizer) matchCustomRule(descLower string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, key := range c.customKeys {
		if strings.Contains(descLower, key) {
			return c.customRules[key], true
		}
	}
	return "", false
}

func matchKeywordTable(table []models.KeywordRule, descLower string) (string, bool) {
	for _, rule := range table {
		for _, keyword := range rule.Keywords {
			if strings.Contains(descLower, strings.ToLower(keyword)) {
				return rule.Name, true
			}
		}
	}
	return "", false
}

// Partition splits categorized transactions into resolved rows and rows
// needing human review, preserving order within each subset.
func Partition(txns []models.Transaction) (resolved, needsReview []models.Transaction) {
	for _, tx := range txns {
		if tx.NeedsReview() {
			needsReview = append(needsReview, tx)
		} else {
			resolved = append(resolved, tx)
		}
	}
	return resolved, needsReview
}

// HasRule reports whether a custom rule exists for key.
func (c *Categorizer) HasRule(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, found := c.customRules[strings.ToLower(key)]
	return found
}

// UpdateRule inserts or replaces a custom rule and marks the rule set dirty.
func (c *Categorizer) UpdateRule(key, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customRules[strings.ToLower(key)] = label
	c.rebuildKeys()
	c.dirty = true
}

// Rules returns a copy of the current custom rule mapping.
func (c *Categorizer) Rules() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string]string, len(c.customRules))
	for k, v := range c.customRules {
		result[k] = v
	}
	return result
}

// SaveRules persists the custom rules through the store if they were
// modified since load.
func (c *Categorizer) SaveRules() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	if err := c.store.Save(c.customRules); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// rebuildKeys recomputes the sorted key slice. Callers hold c.mu.
func (c *Categorizer) rebuildKeys() {
	c.customKeys = c.customKeys[:0]
	for key := range c.customRules {
		c.customKeys = append(c.customKeys, key)
	}
	sort.Strings(c.customKeys)
}
