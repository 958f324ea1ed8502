package model

import "time"

// ToolInvocation is one audited tool call.
type ToolInvocation struct {
	ID         int       `json:"id"`
	Tool       string    `json:"tool"`
	Status     string    `json:"status"` // ok, degraded
	Candidates int       `json:"candidates"`
	Ranked     int       `json:"ranked"`
	Excluded   int       `json:"excluded"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToolCount is an aggregate row for the admin stats endpoint.
type ToolCount struct {
	Tool  string `json:"tool"`
	Count int64  `json:"count"`
}
