// Package rules implements the deterministic first stage of the hybrid
// classifier: an ordered list of keyword rules evaluated top to bottom.
package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/akashdeo/smspend/internal/model"
)

// Rule matches a message shape and assigns a category. All patterns in All
// must match and none in None may match. Order among equal priorities is
// preserved, so the rule list reads as the precedence contract.
type Rule struct {
	Name       string
	Category   model.Category
	All        []string
	None       []string
	Priority   int
	Confidence float64
}

// Match is the result of a successful rule evaluation.
type Match struct {
	RuleName   string
	Category   model.Category
	Confidence float64
}

type compiledRule struct {
	all  []*regexp.Regexp
	none []*regexp.Regexp
	rule Rule
}

// Engine evaluates rules in priority order; the first rule to match wins and
// later rules are never consulted.
type Engine struct {
	rules []compiledRule
}

// NewEngine compiles the given rules. Patterns are matched case-insensitively
// against the whole message text.
func NewEngine(rules []Rule) (*Engine, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{rule: r}
		for _, p := range r.All {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("rule %q: invalid pattern %q: %w", r.Name, p, err)
			}
			cr.all = append(cr.all, re)
		}
		for _, p := range r.None {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("rule %q: invalid guard pattern %q: %w", r.Name, p, err)
			}
			cr.none = append(cr.none, re)
		}
		compiled = append(compiled, cr)
	}

	// Stable: equal priorities keep their list order.
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].rule.Priority > compiled[j].rule.Priority
	})

	return &Engine{rules: compiled}, nil
}

// Evaluate runs the rule list against text. The boolean is false when no
// rule matched, signaling the caller to defer to the statistical classifier.
func (e *Engine) Evaluate(text string) (Match, bool) {
	if strings.TrimSpace(text) == "" {
		return Match{}, false
	}

	for _, cr := range e.rules {
		if cr.matches(text) {
			return Match{
				RuleName:   cr.rule.Name,
				Category:   cr.rule.Category,
				Confidence: cr.rule.Confidence,
			}, true
		}
	}
	return Match{}, false
}

func (cr *compiledRule) matches(text string) bool {
	for _, re := range cr.all {
		if !re.MatchString(text) {
			return false
		}
	}
	for _, re := range cr.none {
		if re.MatchString(text) {
			return false
		}
	}
	return len(cr.all) > 0
}
