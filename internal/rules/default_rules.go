package rules

import "github.com/akashdeo/smspend/internal/model"

// Keyword groups shared across rules. Transaction SMS routinely carry
// several overlapping cues ("refund of debited amount credited to your
// account"), so the precedence below is load-bearing: refund wording beats
// everything, travel beats debit/credit verbs, and debit beats credit.
const (
	refundWords  = `refund|refunded|cashback|reversal|chargeback`
	travelWords  = `pnr|train no|flight|boarding allowed|coach position|chart prepared|bus ticket`
	cancelWords  = `cancelled|tkt cancel|ticket cancel`
	debitWords   = `debited|cash withdrawal|withdrawn|spent|sent from a/c`
	creditWords  = `credited|received|has been added|deposit`
	upiWords     = `upi|phonepe|gpay|google pay|paytm|swiggy|zomato|amazon`
	serviceWords = `otp|one time password|login|verification code|upi registration|set up autopay|statement is ready|thank you for using|service request|has started`
)

// DefaultRules returns the built-in rule list. Callers may reorder, extend,
// or replace it; NewEngine treats the list as data.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:       "refund-keywords",
			Category:   model.CategoryRefund,
			All:        []string{refundWords},
			Priority:   100,
			Confidence: 0.98,
		},
		{
			// A cancelled ticket with refund wording is money coming back,
			// not travel.
			Name:       "cancelled-ticket-refund",
			Category:   model.CategoryRefund,
			All:        []string{cancelWords, `refund|amt|amount`},
			Priority:   95,
			Confidence: 0.97,
		},
		{
			Name:       "travel-indicators",
			Category:   model.CategoryTravel,
			All:        []string{travelWords},
			Priority:   90,
			Confidence: 0.96,
		},
		{
			Name:       "debit-via-upi-merchant",
			Category:   model.CategoryShoppingUPI,
			All:        []string{debitWords, upiWords},
			Priority:   80,
			Confidence: 0.95,
		},
		{
			Name:       "debit-keywords",
			Category:   model.CategoryDebit,
			All:        []string{debitWords},
			Priority:   75,
			Confidence: 0.95,
		},
		{
			Name:       "credit-keywords",
			Category:   model.CategoryCredit,
			All:        []string{creditWords},
			None:       []string{`refund`},
			Priority:   70,
			Confidence: 0.95,
		},
		{
			Name:       "account-service",
			Category:   model.CategoryAccountService,
			All:        []string{serviceWords},
			None:       []string{`debited`, `credited`},
			Priority:   60,
			Confidence: 0.95,
		},
	}
}
