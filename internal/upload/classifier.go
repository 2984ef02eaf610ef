package upload

import (
	"strings"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// ClassifierRule maps a ranked set of keywords to a practice area. Rules
// are evaluated in order; earlier rules win ties.
type ClassifierRule struct {
	// Area is the practice area this rule names.
	Area string

	// Keywords are matched case-insensitively against the document
	// text.
	Keywords []string
}

// DefaultRules is the ranked rule table for Indian legal documents. It is
// data, not control flow: new domains are added by appending rows.
var DefaultRules = []ClassifierRule{
	{
		Area: "Property Law",
		Keywords: []string{
			"property", "lease", "tenant", "landlord", "rent",
			"deed", "premises", "eviction",
		},
	},
	{
		Area: "Criminal Law",
		Keywords: []string{
			"criminal", "fir", "accused", "bail", "offence",
			"police", "prosecution",
		},
	},
	{
		Area: "Family Law",
		Keywords: []string{
			"marriage", "divorce", "custody", "alimony",
			"maintenance", "adoption",
		},
	},
	{
		Area: "Employment Law",
		Keywords: []string{
			"employment", "employee", "employer", "salary",
			"termination", "resignation", "gratuity",
		},
	},
	{
		Area: "Corporate Law",
		Keywords: []string{
			"shareholder", "director", "company", "merger",
			"equity", "incorporation",
		},
	},
	{
		Area: "Tax Law",
		Keywords: []string{
			"tax", "gst", "income tax", "assessment", "refund",
		},
	},
	{
		Area: "Consumer Protection",
		Keywords: []string{
			"consumer", "warranty", "defective", "refund policy",
			"complaint",
		},
	},
}

// Classifier scores text against an ordered rule table. The first rule
// matching two or more keywords wins; failing that, the first rule matching
// a single keyword; failing that, no classification.
type Classifier struct {
	rules []ClassifierRule
}

// NewClassifier creates a classifier over the given rules. A nil slice uses
// DefaultRules.
func NewClassifier(rules []ClassifierRule) *Classifier {
	if rules == nil {
		rules = DefaultRules
	}

	return &Classifier{rules: rules}
}

// Classify returns the practice area for the text, or None when nothing
// matches. It is a pure function of its input.
func (c *Classifier) Classify(text string) fn.Option[string] {
	lowered := strings.ToLower(text)

	singleMatch := fn.None[string]()
	for _, rule := range c.rules {
		hits := 0
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				hits++
			}
		}

		if hits >= 2 {
			return fn.Some(rule.Area)
		}
		if hits == 1 && singleMatch.IsNone() {
			singleMatch = fn.Some(rule.Area)
		}
	}

	return singleMatch
}
