package planner

import (
	"fmt"
	"strings"
)

const (
	briefTitle     = "Daily Leverage Brief"
	ignoreSentence = "Everything else not listed above."
)

// FormatBrief renders a ranked action list and its rationale into the fixed
// plain-text brief layout. It is pure and total: empty inputs just produce
// empty sections.
func FormatBrief(rankedActions []string, rationale, date string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s — %s\n\n", briefTitle, date)

	b.WriteString("FOCUS\n")
	for i, action := range rankedActions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, action)
	}

	b.WriteString("\nRATIONALE\n")
	b.WriteString(rationale)
	b.WriteString("\n\nIGNORE\n")
	b.WriteString(ignoreSentence)

	return strings.TrimSpace(b.String())
}
