package planner

import (
	"sort"
	"strings"
)

// CandidateAction is one action considered for today's plan, scored on three
// independent dimensions.
type CandidateAction struct {
	Action        string `json:"action"`
	Leverage      int    `json:"leverage"`
	Reversibility int    `json:"reversibility"`
	Learning      int    `json:"learning"`
}

// Score is the combined ranking score.
func (c CandidateAction) Score() int {
	return c.Leverage + c.Reversibility + c.Learning
}

// PlanResult is the full output of GeneratePlan.
type PlanResult struct {
	RankedActions    []CandidateAction `json:"ranked_actions"`
	ExcludedActions  []string          `json:"excluded_actions"`
	IrreversibleBet  string            `json:"irreversible_bet"`
	RationaleSummary string            `json:"rationale_summary"`
}

// Heuristic weights and thresholds. Kept as named constants so the ranking
// logic can be tuned without touching it.
const (
	MinGoalsLength    = 5
	MaxRankedActions  = 5
	MaxBacklogItems   = 5
	MinExclusionRatio = 0.3

	backlogLeverageNormal  = 4
	backlogLeverageLowTime = 3
	backlogReversibility   = 6
	backlogLearning        = 3

	// FillerExclusion guarantees the plan always names at least one excluded
	// item, even when the candidate pool is too small to exclude anything.
	FillerExclusion = "Low-leverage maintenance work"

	VagueGoalsRationale = "Goals are too vague to rank actions. Describe what today should achieve in at least a short phrase."

	baseRationale = "Actions are ranked by the sum of leverage, reversibility, and learning value, so the plan favors high-impact moves that are cheap to undo and teach something."
	lowTimeClause = " Constraints signal time pressure, so backlog items are deprioritized below the two strategic actions."
	normalClause  = " Constraints signal no hard time pressure, so backlog items compete with the strategic actions on raw score."
)

// systemCandidates are always in the pool regardless of backlog content.
// Their scores are fixed and unaffected by the low-time flag.
var systemCandidates = []CandidateAction{
	{Action: "Clarify today's single highest-impact decision", Leverage: 9, Reversibility: 8, Learning: 7},
	{Action: "Advance the most uncertain assumption", Leverage: 8, Reversibility: 7, Learning: 9},
}

// GeneratePlan builds, scores, and ranks today's candidate actions. It never
// fails: underspecified goals yield a degraded but structurally valid result.
func GeneratePlan(goals, constraints, backlog string) PlanResult {
	if len(strings.TrimSpace(goals)) < MinGoalsLength {
		return PlanResult{
			RankedActions:    []CandidateAction{},
			ExcludedActions:  []string{},
			IrreversibleBet:  "",
			RationaleSummary: VagueGoalsRationale,
		}
	}

	lowTime := hasTimePressure(constraints)

	backlogLeverage := backlogLeverageNormal
	if lowTime {
		backlogLeverage = backlogLeverageLowTime
	}

	candidates := make([]CandidateAction, 0, len(systemCandidates)+MaxBacklogItems)
	candidates = append(candidates, systemCandidates...)
	for _, line := range backlogLines(backlog) {
		candidates = append(candidates, CandidateAction{
			Action:        line,
			Leverage:      backlogLeverage,
			Reversibility: backlogReversibility,
			Learning:      backlogLearning,
		})
	}

	// 稳定排序：同分的候选保持生成顺序
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score() > candidates[j].Score()
	})

	cut := MaxRankedActions
	if cut > len(candidates) {
		cut = len(candidates)
	}
	ranked := candidates[:cut]

	excluded := make([]string, 0, len(candidates)-cut+1)
	for _, c := range candidates[cut:] {
		excluded = append(excluded, c.Action)
	}
	if len(ranked) == 0 || float64(len(excluded))/float64(len(ranked)) < MinExclusionRatio {
		excluded = append(excluded, FillerExclusion)
	}

	bet := ""
	if len(ranked) > 0 {
		bet = ranked[0].Action
	}

	rationale := baseRationale + normalClause
	if lowTime {
		rationale = baseRationale + lowTimeClause
	}

	return PlanResult{
		RankedActions:    ranked,
		ExcludedActions:  excluded,
		IrreversibleBet:  bet,
		RationaleSummary: rationale,
	}
}

// hasTimePressure reports whether constraints mention being short on time.
func hasTimePressure(constraints string) bool {
	lower := strings.ToLower(constraints)
	return strings.Contains(lower, "time") || strings.Contains(lower, "busy")
}

// backlogLines splits the free-text backlog into trimmed non-empty lines,
// keeping at most MaxBacklogItems of them.
func backlogLines(backlog string) []string {
	var lines []string
	for _, raw := range strings.Split(backlog, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == MaxBacklogItems {
			break
		}
	}
	return lines
}
