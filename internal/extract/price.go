package extract

import (
	"regexp"
	"strings"
)

// pricePattern matches Norwegian retail price spellings: "29,90 kr",
// "29.90kr", "kr 29,90" and bare comma-decimal amounts.
var pricePattern = regexp.MustCompile(`(?i)(\d+[.,]\d{2}\s*kr?|kr\s*\d+[.,]\d{2})`)

// SplitPriceLine splits a text line into a probable title and price using
// the Norwegian price heuristic. When no price is recognized the whole
// trimmed line is returned as the title with an empty price.
func SplitPriceLine(line string) (title, price string) {
	match := pricePattern.FindString(line)
	if match == "" {
		return strings.TrimSpace(line), ""
	}

	price = strings.TrimSpace(match)

	title = strings.Trim(strings.ReplaceAll(line, match, ""), " -:")
	if title == "" {
		title = strings.TrimSpace(line)
	}

	return title, price
}
