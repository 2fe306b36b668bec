package models

// ExportRow is the spreadsheet-facing shape of a categorized transaction.
// Column order matches the struct field order.
type ExportRow struct {
	Account     string `csv:"Account" json:"account"`
	Date        string `csv:"Date" json:"date"`
	Category    string `csv:"Category" json:"category"`
	Description string `csv:"Description" json:"description"`
	Debit       string `csv:"Debit" json:"debit"`
	Credit      string `csv:"Credit" json:"credit"`
	SubCategory string `csv:"Sub-category" json:"sub_category"`
}

// ToExportRow converts a categorized transaction to its export shape.
func (t *Transaction) ToExportRow() ExportRow {
	account := t.Account
	if account == "" {
		account = DefaultAccount
	}
	return ExportRow{
		Account:     account,
		Date:        t.Date,
		Category:    t.Category,
		Description: t.Description,
		Debit:       t.Debit,
		Credit:      t.Credit,
		SubCategory: t.SubCategory,
	}
}

// ToTransaction converts an exported row back into a transaction so
// previously exported ledgers can be re-reviewed. The parsed date stays
// zero when the exported date is malformed.
func (r ExportRow) ToTransaction() Transaction {
	parsedDate, _ := ParseDate(r.Date)
	return Transaction{
		Date:        r.Date,
		ParsedDate:  parsedDate,
		Description: r.Description,
		Debit:       r.Debit,
		Credit:      r.Credit,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		Account:     r.Account,
	}
}

// ToExportRows converts a transaction sequence, preserving order.
func ToExportRows(txns []Transaction) []ExportRow {
	rows := make([]ExportRow, 0, len(txns))
	for i := range txns {
		rows = append(rows, txns[i].ToExportRow())
	}
	return rows
}
