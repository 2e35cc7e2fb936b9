// Package extract pulls monetary amounts out of free-text SMS messages.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxAmount is the ceiling above which a parsed number is assumed to
// be a misparse (account number, mobile number) rather than money.
const DefaultMaxAmount = 200000

// currencyAmount matches a currency marker followed by optional punctuation
// and a numeric literal: "Rs1800", "Rs.176", "INR 2,499.50", "₹249".
var currencyAmount = regexp.MustCompile(`(?i)(?:rs|inr|aed|₹|amt|amount)\s*[.:]?\s*([0-9][0-9,]*(?:\.[0-9]+)?|\.[0-9]+)`)

// bareNumber matches a numeric literal with no currency context.
var bareNumber = regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?|\.[0-9]+)`)

// transactionalWords gate the bare-number fallback: without one of these in
// the text, a naked number is more likely an OTP, PNR, or phone number.
var transactionalWords = []string{
	"debited", "credited", "txn", "upi", "payment", "paid",
	"refund", "reversed", "withdrawn", "transferred", "deposit",
}

// Config controls extraction behavior.
type Config struct {
	// MaxAmount is the largest value accepted as a plausible amount.
	MaxAmount float64
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{MaxAmount: DefaultMaxAmount}
}

// Extractor finds monetary amounts in message text.
type Extractor struct {
	maxAmount float64
}

// New creates an extractor with the given configuration.
func New(cfg Config) *Extractor {
	if cfg.MaxAmount <= 0 {
		cfg.MaxAmount = DefaultMaxAmount
	}
	return &Extractor{maxAmount: cfg.MaxAmount}
}

// Amount returns the first plausible monetary amount in text. The second
// return value is false when no acceptable amount was found; extraction
// never fails with an error.
func (e *Extractor) Amount(text string) (float64, bool) {
	if strings.TrimSpace(text) == "" {
		return 0, false
	}

	// First currency-marked occurrence wins; if it fails the sanity bound
	// the amount is treated as absent rather than searching further.
	if m := currencyAmount.FindStringSubmatch(text); m != nil {
		return e.parse(m[1])
	}

	// No currency marker: only trust a bare number in transactional text.
	if !hasTransactionalWord(text) {
		return 0, false
	}
	if m := bareNumber.FindStringSubmatch(text); m != nil {
		if v, ok := e.parse(m[1]); ok {
			return v, true
		}
	}

	return 0, false
}

// parse strips thousands separators and applies the sanity bound. A value
// outside (0, MaxAmount] is rejected, not reported as an error.
func (e *Extractor) parse(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if v <= 0 || v > e.maxAmount {
		return 0, false
	}
	return v, true
}

func hasTransactionalWord(text string) bool {
	t := strings.ToLower(text)
	for _, w := range transactionalWords {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
