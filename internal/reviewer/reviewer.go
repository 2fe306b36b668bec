// Package reviewer groups uncategorized transactions by a normalized
// description key so each merchant or payee is reviewed once, and turns
// confirmed labels into persisted custom rules.
package reviewer

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"statement-ledger/internal/categorizer"
	"statement-ledger/internal/logging"
	"statement-ledger/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// noiseWords are removed from descriptions before grouping, longest or most
// specific variants first so prefixes of later entries never mask them.
var noiseWords = []string{
	"pos purchase settlement",
	"pos purchase",
	"pospurchase",
	"card no",
	"settlement",
	"durba",
	"durban",
	"cape town",
	"johannesburg",
	"pretoria",
	"s2s",
	"overseas purchase",
	"digital payment",
	"payment",
	"eft",
}

// punctReplacer maps separator punctuation to spaces so token boundaries
// survive normalization.
var punctReplacer = strings.NewReplacer("*", " ", "#", " ", "_", " ", "'", " ")

// GroupingKey normalizes a description into the key used to cluster rows
// for review: lowercase, noise phrases removed, digits stripped, separator
// punctuation spaced, whitespace collapsed.
func GroupingKey(description string) string {
	key := strings.ToLower(description)
	for _, word := range noiseWords {
		key = strings.ReplaceAll(key, word, "")
	}

	var b strings.Builder
	for _, r := range key {
		if r < '0' || r > '9' {
			b.WriteRune(r)
		}
	}
	key = punctReplacer.Replace(b.String())

	return strings.Join(strings.Fields(key), " ")
}

// Group is one review unit: all transactions sharing a grouping key.
type Group struct {
	Key          string
	Count        int
	Sample       string // first description seen for the key
	Transactions []models.Transaction
	Suggestion   string // optional label suggestion, never auto-applied
}

// Session is an in-memory review pass over a set of transactions that
// need labels.
type Session struct {
	ID     string
	Groups []Group
}

// NewSession clusters the given transactions into review groups. Groups
// are ordered by descending count, then key, so the most frequent payees
// surface first and ordering is stable across runs.
func NewSession(txns []models.Transaction) *Session {
	byKey := make(map[string]*Group)
	var order []string

	for _, tx := range txns {
		key := GroupingKey(tx.Description)
		if key == "" {
			// Nothing left to match on. A rule keyed on the empty string
			// would substring-match every future description.
			log.WithField("description", tx.Description).Debug("Skipping transaction with empty grouping key")
			continue
		}
		group, found := byKey[key]
		if !found {
			group = &Group{Key: key, Sample: tx.Description}
			byKey[key] = group
			order = append(order, key)
		}
		group.Count++
		group.Transactions = append(group.Transactions, tx)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})

	return &Session{
		ID:     uuid.New().String(),
		Groups: groups,
	}
}

// ApplyLabel records a confirmed label for a group: the group key becomes
// a custom rule and every transaction in the group gets the subcategory.
// The updated transactions are returned for re-export.
func (s *Session) ApplyLabel(cat *categorizer.Categorizer, groupIndex int, label string) []models.Transaction {
	if groupIndex < 0 || groupIndex >= len(s.Groups) {
		return nil
	}
	group := &s.Groups[groupIndex]

	cat.UpdateRule(group.Key, label)
	log.WithField("key", group.Key).WithField("label", label).Debug("Recorded custom rule from review")

	for i := range group.Transactions {
		group.Transactions[i].SubCategory = label
	}
	return group.Transactions
}
