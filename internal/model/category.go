// Package model defines the core domain models used throughout the application.
package model

// Category is a spending category label assigned to a message.
type Category string

// The closed set of categories the rule engine can produce. The statistical
// classifier is limited to whatever labels its training data contained, which
// in practice is this set plus CategoryOther.
const (
	CategoryDebit          Category = "Debit"
	CategoryCredit         Category = "Credit"
	CategoryRefund         Category = "Refund"
	CategoryShoppingUPI    Category = "Shopping/UPI"
	CategoryTravel         Category = "Travel"
	CategoryAccountService Category = "Account/Service"
	CategoryOther          Category = "Other"

	// CategoryUnknown is the fallback when no model is loaded and no rule
	// matched. It never appears in training data.
	CategoryUnknown Category = "Unknown"
)

// KnownCategories returns the categories accepted for corrections and corpus
// imports, in display order.
func KnownCategories() []Category {
	return []Category{
		CategoryDebit,
		CategoryCredit,
		CategoryRefund,
		CategoryShoppingUPI,
		CategoryTravel,
		CategoryAccountService,
		CategoryOther,
	}
}

// IsKnown reports whether c is one of the fixed category labels.
func (c Category) IsKnown() bool {
	for _, k := range KnownCategories() {
		if c == k {
			return true
		}
	}
	return false
}
