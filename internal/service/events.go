package service

import "time"

// Routing key for plan generation events on the topic exchange.
const PlanGeneratedKey = "plan.generated"

// PlanGeneratedPayload is published after every successful plan generation.
type PlanGeneratedPayload struct {
	IrreversibleBet string    `json:"irreversible_bet"`
	RankedCount     int       `json:"ranked_count"`
	ExcludedCount   int       `json:"excluded_count"`
	GeneratedAt     time.Time `json:"generated_at"`
}
