package reviewer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ledger/internal/categorizer"
	"statement-ledger/internal/logging"
	"statement-ledger/internal/models"
	"statement-ledger/internal/store"
)

func TestGroupingKey(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		expected string
	}{
		{"lowercases", "UNKNOWN MERCHANT", "unknown merchant"},
		{"strips noise phrase", "POS Purchase Unknown Merchant", "unknown merchant"},
		{"strips city noise", "Unknown Merchant Cape Town", "unknown merchant"},
		{"durba prefix leaves residue", "Unknown Merchant Durban", "unknown merchant n"},
		{"strips digits", "Merchant 12345 Store 9", "merchant store"},
		{"punctuation to spaces", "merchant*store#ref_x", "merchant store ref x"},
		{"collapses whitespace", "  merchant    store  ", "merchant store"},
		{"combined", "POS Purchase MERCHANT*123 Card No 4567 Pretoria", "merchant"},
		{"mid-word noise deleted without a gap", "abceftdef", "abcdef"},
		{"all noise", "POS Purchase 123", ""},
		{"blank description", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GroupingKey(tt.desc))
		})
	}
}

func TestGroupingKey_Idempotent(t *testing.T) {
	descs := []string{
		"POS Purchase MERCHANT*123 Durban",
		"Digital Payment Something 99",
		"plain merchant",
	}
	for _, desc := range descs {
		key := GroupingKey(desc)
		assert.Equal(t, key, GroupingKey(key))
	}
}

func TestNewSession_GroupsByKey(t *testing.T) {
	txns := []models.Transaction{
		{Description: "POS Purchase Merchant 111"},
		{Description: "pos purchase MERCHANT 222"},
		{Description: "Other Shop 5"},
	}

	session := NewSession(txns)

	require.Len(t, session.Groups, 2)
	assert.NotEmpty(t, session.ID)

	// Larger group first.
	assert.Equal(t, "merchant", session.Groups[0].Key)
	assert.Equal(t, 2, session.Groups[0].Count)
	assert.Equal(t, "POS Purchase Merchant 111", session.Groups[0].Sample)

	assert.Equal(t, "other shop", session.Groups[1].Key)
	assert.Equal(t, 1, session.Groups[1].Count)
}

func TestNewSession_SkipsEmptyGroupingKeys(t *testing.T) {
	txns := []models.Transaction{
		{Description: "POS Purchase 123"}, // all noise, key is empty
		{Description: ""},
		{Description: "Real Merchant 9"},
	}

	session := NewSession(txns)

	require.Len(t, session.Groups, 1)
	assert.Equal(t, "real merchant", session.Groups[0].Key)
}

func TestNewSession_EmptyKeyNeverBecomesRule(t *testing.T) {
	mockStore := &store.MockRuleStore{}
	cat := categorizer.NewCategorizer(mockStore, logging.NewMockLogger())

	// Noise-only descriptions produce no review groups, so no label can be
	// recorded against an empty key that would match every description.
	session := NewSession([]models.Transaction{
		{Description: "POS Purchase 123", SubCategory: models.SubCategoryUncategorized},
	})
	assert.Empty(t, session.Groups)
	assert.Nil(t, session.ApplyLabel(cat, 0, "Misc"))
	assert.Empty(t, cat.Rules())

	fresh := cat.Categorize([]models.Transaction{{Description: "POS Purchase Checkers", Debit: "100.00"}})[0]
	assert.Equal(t, "Groceries", fresh.SubCategory)
}

func TestNewSession_TiesOrderedByKey(t *testing.T) {
	txns := []models.Transaction{
		{Description: "zeta shop"},
		{Description: "alpha shop"},
	}

	session := NewSession(txns)

	require.Len(t, session.Groups, 2)
	assert.Equal(t, "alpha shop", session.Groups[0].Key)
	assert.Equal(t, "zeta shop", session.Groups[1].Key)
}

func TestApplyLabel(t *testing.T) {
	mockStore := &store.MockRuleStore{}
	cat := categorizer.NewCategorizer(mockStore, logging.NewMockLogger())

	txns := []models.Transaction{
		{Description: "Unknown Merchant 1", SubCategory: models.SubCategoryUncategorized},
		{Description: "unknown merchant 2", SubCategory: models.SubCategoryUncategorized},
	}
	session := NewSession(txns)
	require.Len(t, session.Groups, 1)

	updated := session.ApplyLabel(cat, 0, "Groceries")

	require.Len(t, updated, 2)
	for _, tx := range updated {
		assert.Equal(t, "Groceries", tx.SubCategory)
	}
	assert.True(t, cat.HasRule("unknown merchant"))

	// The learned rule now categorizes fresh occurrences.
	fresh := cat.Categorize([]models.Transaction{{Description: "UNKNOWN MERCHANT 3"}})[0]
	assert.Equal(t, "Groceries", fresh.SubCategory)
}

func TestApplyLabel_OutOfRange(t *testing.T) {
	cat := categorizer.NewCategorizer(&store.MockRuleStore{}, logging.NewMockLogger())
	session := NewSession([]models.Transaction{{Description: "shop"}})

	assert.Nil(t, session.ApplyLabel(cat, -1, "x"))
	assert.Nil(t, session.ApplyLabel(cat, 5, "x"))
}

func TestStaticSuggester(t *testing.T) {
	s := &StaticSuggester{Labels: map[string]string{"merchant": "Groceries"}}

	label, err := s.Suggest(context.Background(), Group{Key: "merchant"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", label)

	_, err = s.Suggest(context.Background(), Group{Key: "unknown"})
	assert.Error(t, err)
}
