package models

// Statement markers
const (
	// OpeningBalanceMarker is the literal text identifying the statement's
	// opening balance row. Matched case-insensitively.
	OpeningBalanceMarker = "Bal Brought Forward"
)

// TerminalMarkers halt block segmentation entirely when present in a line.
// They mark the statement's pricing/footer section, which follows the
// transaction table. Matched case-insensitively.
var TerminalMarkers = []string{
	"YOUR PRICING PLAN",
	"MANAGEMENT FEE",
}

// Categories
const (
	CategoryBalance         = "Balance"
	CategoryOther           = "Other"
	CategoryDigitalTransfer = "Digital Transfer"
	CategoryCreditTransfer  = "Credit Transfer"
)

// Subcategories with special meaning to the pipeline
const (
	SubCategoryOpeningBalance = "Opening Balance"
	SubCategoryUncategorized  = "Uncategorized"
	SubCategoryTransferIn     = "Transfer In"
	SubCategoryTransferOut    = "Transfer Out"
)

// DefaultAccount is the account tag applied to exported transactions when
// no explicit tag is configured.
const DefaultAccount = "Checking"
