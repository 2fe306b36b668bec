package models

// KeywordRule maps a category or subcategory label to an ordered list of
// case-insensitive match terms. Precedence is data: rules are evaluated in
// slice order and the first matching keyword wins.
type KeywordRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// KeywordConfig is the on-disk shape of a keyword-table override file.
type KeywordConfig struct {
	Categories    []KeywordRule `yaml:"categories"`
	SubCategories []KeywordRule `yaml:"subcategories"`
}

// MainCategories is the fixed main-category keyword table, in precedence
// order. A transaction that matches none of these is categorized "Other".
var MainCategories = []KeywordRule{
	{Name: "Bank Charges", Keywords: []string{"admin charge", "monthly fee", "management fee", "notific fee", "archive stmt enq", "card replacement"}},
	{Name: "Card Purchase", Keywords: []string{"pos purchase", "overseas purchase", "pospurchase"}},
	{Name: "Cash Operation", Keywords: []string{"cash acceptor dep", "cash deposit", "cash withdrawal", "atm withdrawal"}},
	{Name: CategoryDigitalTransfer, Keywords: []string{"digital transf", "eft", "interbank"}},
	{Name: "Digital Payment", Keywords: []string{"digital payment"}},
	{Name: CategoryCreditTransfer, Keywords: []string{"acb credit", "cr settlement"}},
	{Name: "Debit Order", Keywords: []string{"debit order", "d/o"}},
	{Name: "Voucher", Keywords: []string{"digital vouchers grp"}},
}

// SubCategories is the fixed subcategory keyword table, in precedence order.
var SubCategories = []KeywordRule{
	{Name: "Groceries", Keywords: []string{"checkers", "pick n pay", "pnp", "woolworths", "shoprite", "spar", "food lovers"}},
	{Name: "Household", Keywords: []string{"dis-chem", "clicks", "game", "builders"}},
	{Name: "Restaurants & Takeaways", Keywords: []string{"steers", "kfc", "nandos", "mcdonalds", "kauai", "wimpy", "milky lane"}},
	{Name: "Food Delivery", Keywords: []string{"uber eats", "mr d food", "ubereats"}},
	{Name: "Coffee Shops", Keywords: []string{"starbucks", "vida e", "seattle coffee", "thecafe23"}},
	{Name: "Subscriptions & Media", Keywords: []string{"netflix", "spotify", "showmax", "dstv", "youtube premium", "apple.com/bill"}},
	{Name: "Fuel", Keywords: []string{"sasol", "shell", "bp", "total", "engen"}},
	{Name: "Ride Hailing", Keywords: []string{"uber", "bolt"}},
	{Name: "Vehicle Maintenance", Keywords: []string{"supa quick", "tiger wheel", "bosch"}},
	{Name: "Public Transport", Keywords: []string{"gautrain"}},
	{Name: "Tolls & Roads", Keywords: []string{"sanral", "bakwena", "rtmc"}},
	{Name: "General Shopping", Keywords: []string{"takealo", "superbalist", "amazon", "h&m"}},
	{Name: "Electronics", Keywords: []string{"incredible connection", "istore"}},
	{Name: "Books & Stationery", Keywords: []string{"pna", "postnet"}},
	{Name: "Gaming", Keywords: []string{"steamgames", "playstation", "xbox"}},
	{Name: "Phone & Airtime", Keywords: []string{"airtime", "vodacom", "mtn", "cell c", "telkom"}},
	{Name: "Utilities", Keywords: []string{"eskom", "city power", "city of jhb", "city of cpt", "rand water"}},
	{Name: "Medical", Keywords: []string{"dischem", "clicks", "momentum", "discovery", "pathcare", "lancet"}},
	{Name: "Investments", Keywords: []string{"easyequities", "absa bank bit", "luno", "absa bank crypto", "absa bank mine"}},
	{Name: "Income", Keywords: []string{"cashfocus", "salary", "dad", "mom"}},
	{Name: "Nsfas", Keywords: []string{"ukzn_fin aid"}},
}

// SubCategoryNames returns the subcategory labels in table order, for
// presenting a selection menu during review.
func SubCategoryNames() []string {
	names := make([]string, 0, len(SubCategories))
	for _, rule := range SubCategories {
		names = append(names, rule.Name)
	}
	return names
}
