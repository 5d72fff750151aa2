package donation

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// targetPattern builds the expression matching "<marker>: <amount>".
func targetPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(marker) + `\s*:\s*([0-9]+(?:\.[0-9]+)?)`)
}

// ParseTarget extracts the donation target from a pull request body.
// The first occurrence of the marker wins. It returns false when the marker
// is absent or not followed by a decimal amount.
func ParseTarget(body string, tax Taxonomy) (Target, bool) {
	if tax.TargetMarker == "" {
		return Target{}, false
	}

	m := targetPattern(tax.TargetMarker).FindStringSubmatch(body)
	if m == nil {
		return Target{}, false
	}

	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return Target{}, false
	}

	return Target{Amount: amount}, true
}
