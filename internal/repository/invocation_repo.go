package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"leveragebrief/internal/model"
)

type InvocationRepository struct {
	db *pgxpool.Pool
}

func NewInvocationRepository(db *pgxpool.Pool) *InvocationRepository {
	return &InvocationRepository{db: db}
}

// CreateInvocation inserts one audited tool call.
func (r *InvocationRepository) CreateInvocation(ctx context.Context, inv *model.ToolInvocation) (int, error) {
	query := `
        INSERT INTO tool_invocations (tool, status, candidates, ranked, excluded, duration_ms, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query,
		inv.Tool,
		inv.Status,
		inv.Candidates,
		inv.Ranked,
		inv.Excluded,
		inv.DurationMS,
	).Scan(&id)
	return id, err
}

// CountByTool returns invocation totals grouped by tool.
func (r *InvocationRepository) CountByTool(ctx context.Context) ([]model.ToolCount, error) {
	query := `
        SELECT tool, COUNT(*)
        FROM tool_invocations
        GROUP BY tool
        ORDER BY tool
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []model.ToolCount{}

	for rows.Next() {
		var c model.ToolCount
		if err := rows.Scan(&c.Tool, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// ListRecent returns the newest invocations, capped at limit.
func (r *InvocationRepository) ListRecent(ctx context.Context, limit int) ([]model.ToolInvocation, error) {
	query := `
        SELECT id, tool, status, candidates, ranked, excluded, duration_ms, created_at
        FROM tool_invocations
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invocations := []model.ToolInvocation{}

	for rows.Next() {
		var inv model.ToolInvocation
		err := rows.Scan(
			&inv.ID,
			&inv.Tool,
			&inv.Status,
			&inv.Candidates,
			&inv.Ranked,
			&inv.Excluded,
			&inv.DurationMS,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		invocations = append(invocations, inv)
	}

	return invocations, rows.Err()
}
