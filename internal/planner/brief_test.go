package planner

import (
	"strconv"
	"strings"
	"testing"
)

func TestFormatBriefLayout(t *testing.T) {
	got := FormatBrief([]string{"Ship the fix", "Write the memo"}, "Because it compounds.", "2024-01-01")

	want := "Daily Leverage Brief — 2024-01-01\n\n" +
		"FOCUS\n" +
		"1. Ship the fix\n" +
		"2. Write the memo\n\n" +
		"RATIONALE\n" +
		"Because it compounds.\n\n" +
		"IGNORE\n" +
		"Everything else not listed above."

	if got != want {
		t.Fatalf("brief = %q, want %q", got, want)
	}
}

func TestFormatBriefEmptyActions(t *testing.T) {
	got := FormatBrief(nil, "", "2024-01-01")

	if !strings.HasPrefix(got, "Daily Leverage Brief — 2024-01-01") {
		t.Fatalf("brief title missing: %q", got)
	}
	if !strings.Contains(got, "FOCUS") {
		t.Fatalf("FOCUS section missing: %q", got)
	}
	if strings.Contains(got, "1. ") {
		t.Fatalf("empty action list produced an item line: %q", got)
	}
	if !strings.Contains(got, "Everything else not listed above.") {
		t.Fatalf("IGNORE sentence missing: %q", got)
	}
}

func TestPlanToBriefRoundTrip(t *testing.T) {
	plan := GeneratePlan("ship the release and close the loop", "busy", "triage inbox\nreview PRs")

	actions := make([]string, 0, len(plan.RankedActions))
	for _, c := range plan.RankedActions {
		actions = append(actions, c.Action)
	}

	brief := FormatBrief(actions, plan.RationaleSummary, "2024-01-01")

	if !strings.Contains(brief, "Daily Leverage Brief — 2024-01-01") {
		t.Fatalf("title line missing: %q", brief)
	}
	for i, a := range actions {
		line := "\n" + strconv.Itoa(i+1) + ". " + a + "\n"
		if !strings.Contains(brief+"\n", line) {
			t.Fatalf("numbered focus line %q missing in %q", line, brief)
		}
	}
	if !strings.Contains(brief, plan.RationaleSummary) {
		t.Fatalf("rationale not verbatim in brief: %q", brief)
	}
	if !strings.Contains(brief, "Everything else not listed above.") {
		t.Fatalf("IGNORE sentence missing: %q", brief)
	}
}
