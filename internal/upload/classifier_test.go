package upload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestClassifyMultiKeywordWins verifies that the first rule with two or
// more keyword hits wins even when an earlier rule has a single hit.
func TestClassifyMultiKeywordWins(t *testing.T) {
	c := NewClassifier(nil)

	// "property" hits Property Law once; "accused" and "bail" hit
	// Criminal Law twice.
	area := c.Classify(
		"the accused applied for bail over the property dispute",
	)
	require.Equal(t, "Criminal Law", area.UnwrapOr(""))
}

// TestClassifySingleKeywordFallback verifies the single-hit fallback when
// no rule reaches two hits.
func TestClassifySingleKeywordFallback(t *testing.T) {
	c := NewClassifier(nil)

	area := c.Classify("a notice about unpaid rent")
	require.Equal(t, "Property Law", area.UnwrapOr(""))
}

// TestClassifyRuleOrderBreaksTies verifies that earlier rules win when
// several reach the multi-keyword threshold.
func TestClassifyRuleOrderBreaksTies(t *testing.T) {
	c := NewClassifier([]ClassifierRule{
		{Area: "First", Keywords: []string{"alpha", "beta"}},
		{Area: "Second", Keywords: []string{"alpha", "beta"}},
	})

	area := c.Classify("alpha beta")
	require.Equal(t, "First", area.UnwrapOr(""))
}

// TestClassifyNoMatch verifies that unmatched text yields no
// classification.
func TestClassifyNoMatch(t *testing.T) {
	c := NewClassifier(nil)

	area := c.Classify("a recipe for dal makhani")
	require.True(t, area.IsNone())
}

// TestClassifyCaseInsensitive verifies case-insensitive matching.
func TestClassifyCaseInsensitive(t *testing.T) {
	c := NewClassifier(nil)

	area := c.Classify("LEASE agreement between LANDLORD and TENANT")
	require.Equal(t, "Property Law", area.UnwrapOr(""))
}
