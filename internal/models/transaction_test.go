package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOpeningBalance(t *testing.T) {
	tests := []struct {
		desc     string
		expected bool
	}{
		{"Bal Brought Forward", true},
		{"bal brought forward", true},
		{"Opening: BAL BROUGHT FORWARD 2024", true},
		{"POS Purchase Checkers", false},
		{"", false},
	}

	for _, tt := range tests {
		tx := Transaction{Description: tt.desc}
		assert.Equal(t, tt.expected, tx.IsOpeningBalance(), tt.desc)
	}
}

func TestIsDebitIsCredit(t *testing.T) {
	assert.True(t, (&Transaction{Debit: "10.00"}).IsDebit())
	assert.False(t, (&Transaction{Debit: "10.00"}).IsCredit())
	assert.True(t, (&Transaction{Credit: "10.00"}).IsCredit())
	assert.False(t, (&Transaction{}).IsDebit())
	assert.False(t, (&Transaction{}).IsCredit())
}

func TestNeedsReview(t *testing.T) {
	assert.True(t, (&Transaction{SubCategory: SubCategoryUncategorized}).NeedsReview())
	assert.False(t, (&Transaction{SubCategory: "Groceries"}).NeedsReview())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"250.00", "250"},
		{"1,000.00", "1000"},
		{"5 000.50", "5000.5"},
		{" 12.34 ", "12.34"},
		{"garbage", "0"},
		{"", "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseAmount(tt.input).String(), tt.input)
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("05/01/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), date)

	date, err = ParseDate("5/01/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("2024-01-05")
	assert.Error(t, err)
}

func TestToExportRow(t *testing.T) {
	tx := Transaction{
		Date:        "05/01/2024",
		Description: "POS Purchase Checkers",
		Debit:       "250.00",
		Category:    "Card Purchase",
		SubCategory: "Groceries",
		Account:     "Savings",
	}

	row := tx.ToExportRow()

	assert.Equal(t, "Savings", row.Account)
	assert.Equal(t, "05/01/2024", row.Date)
	assert.Equal(t, "Card Purchase", row.Category)
	assert.Equal(t, "POS Purchase Checkers", row.Description)
	assert.Equal(t, "250.00", row.Debit)
	assert.Empty(t, row.Credit)
	assert.Equal(t, "Groceries", row.SubCategory)
}

func TestToExportRow_DefaultsAccount(t *testing.T) {
	tx := Transaction{Description: "x"}
	row := tx.ToExportRow()

	assert.Equal(t, DefaultAccount, row.Account)
}

func TestToTransaction_RoundTrip(t *testing.T) {
	row := ExportRow{
		Account:     "Savings",
		Date:        "05/01/2024",
		Category:    "Card Purchase",
		Description: "POS Purchase Checkers",
		Debit:       "250.00",
		SubCategory: "Groceries",
	}

	tx := row.ToTransaction()

	assert.Equal(t, "05/01/2024", tx.Date)
	assert.Equal(t, "POS Purchase Checkers", tx.Description)
	assert.Equal(t, "250.00", tx.Debit)
	assert.Equal(t, "Groceries", tx.SubCategory)
	assert.Equal(t, "Savings", tx.Account)
	assert.False(t, tx.ParsedDate.IsZero())
	assert.Equal(t, row, tx.ToExportRow())
}

func TestToTransaction_MalformedDate(t *testing.T) {
	tx := ExportRow{Date: "not a date", Description: "x"}.ToTransaction()
	assert.True(t, tx.ParsedDate.IsZero())
}

func TestToExportRows(t *testing.T) {
	rows := ToExportRows([]Transaction{{Description: "a"}, {Description: "b"}})

	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Description)
	assert.Equal(t, "b", rows[1].Description)
}
