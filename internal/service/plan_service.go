package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leveragebrief/internal/model"
	"leveragebrief/internal/planner"
	"leveragebrief/internal/repository"
	"leveragebrief/pkg/circuitbreaker"
	"leveragebrief/pkg/metrics"
	"leveragebrief/pkg/mq"
)

// PlanService wraps the pure planner core with the operational concerns of a
// deployed tool server: result caching, invocation auditing, and event
// publishing. All of the collaborators are optional; a nil repo, publisher,
// or cache simply disables that concern and never affects the tool response.
type PlanService struct {
	invocationRepo *repository.InvocationRepository
	publisher      *mq.Publisher
	cache          *goredis.Client
	cacheTTL       time.Duration
	breaker        *circuitbreaker.CircuitBreaker
	logger         *zap.Logger
}

func NewPlanService(
	invocationRepo *repository.InvocationRepository,
	publisher *mq.Publisher,
	cache *goredis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *PlanService {
	return &PlanService{
		invocationRepo: invocationRepo,
		publisher:      publisher,
		cache:          cache,
		cacheTTL:       cacheTTL,
		breaker:        circuitbreaker.New(circuitbreaker.DefaultConfig()),
		logger:         logger,
	}
}

// GeneratePlan runs the planner core for the given inputs. The core is
// deterministic, so identical inputs may be served from the redis cache.
func (s *PlanService) GeneratePlan(ctx context.Context, goals, constraints, backlog string) planner.PlanResult {
	key := planCacheKey(goals, constraints, backlog)

	if cached, ok := s.cacheGet(ctx, key); ok {
		metrics.IncrementPlanCache("hit")
		metrics.RecordToolInvocation("generate_plan", "ok", 0)
		return cached
	}

	start := time.Now()
	result := planner.GeneratePlan(goals, constraints, backlog)
	duration := time.Since(start)

	status := "ok"
	if result.RationaleSummary == planner.VagueGoalsRationale {
		status = "degraded"
	}

	candidates := len(result.RankedActions) + len(result.ExcludedActions)
	if n := len(result.ExcludedActions); n > 0 && result.ExcludedActions[n-1] == planner.FillerExclusion {
		candidates--
	}
	metrics.ObservePlanCandidates(candidates)
	metrics.RecordToolInvocation("generate_plan", status, duration)

	s.cacheSet(ctx, key, result)
	s.audit(ctx, &model.ToolInvocation{
		Tool:       "generate_plan",
		Status:     status,
		Candidates: candidates,
		Ranked:     len(result.RankedActions),
		Excluded:   len(result.ExcludedActions),
		DurationMS: duration.Milliseconds(),
	})

	if status == "ok" {
		s.publishGenerated(result)
	}

	return result
}

// FormatBrief renders the brief for the given ranked actions.
func (s *PlanService) FormatBrief(ctx context.Context, rankedActions []string, rationale, date string) string {
	start := time.Now()
	brief := planner.FormatBrief(rankedActions, rationale, date)
	duration := time.Since(start)

	metrics.RecordToolInvocation("format_brief", "ok", duration)
	s.audit(ctx, &model.ToolInvocation{
		Tool:       "format_brief",
		Status:     "ok",
		Ranked:     len(rankedActions),
		DurationMS: duration.Milliseconds(),
	})

	return brief
}

// audit records the invocation best-effort. The breaker keeps a dead database
// from slowing down tool traffic.
func (s *PlanService) audit(ctx context.Context, inv *model.ToolInvocation) {
	if s.invocationRepo == nil {
		return
	}

	err := s.breaker.Execute(func() error {
		_, err := s.invocationRepo.CreateInvocation(ctx, inv)
		return err
	})
	if err != nil {
		s.logger.Warn("Invocation audit write failed",
			zap.String("tool", inv.Tool),
			zap.Error(err),
		)
	}
}

func (s *PlanService) publishGenerated(result planner.PlanResult) {
	if s.publisher == nil {
		return
	}

	payload := PlanGeneratedPayload{
		IrreversibleBet: result.IrreversibleBet,
		RankedCount:     len(result.RankedActions),
		ExcludedCount:   len(result.ExcludedActions),
		GeneratedAt:     time.Now(),
	}

	if err := s.publisher.Publish(PlanGeneratedKey, payload); err != nil {
		s.logger.Warn("Failed to publish plan.generated event", zap.Error(err))
	}
}

func (s *PlanService) cacheGet(ctx context.Context, key string) (planner.PlanResult, bool) {
	if s.cache == nil {
		return planner.PlanResult{}, false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			metrics.IncrementPlanCache("error")
			s.logger.Warn("Plan cache read failed", zap.Error(err))
		} else {
			metrics.IncrementPlanCache("miss")
		}
		return planner.PlanResult{}, false
	}

	var result planner.PlanResult
	if err := json.Unmarshal(raw, &result); err != nil {
		metrics.IncrementPlanCache("error")
		return planner.PlanResult{}, false
	}
	return result, true
}

func (s *PlanService) cacheSet(ctx context.Context, key string, result planner.PlanResult) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("Plan cache write failed", zap.Error(err))
	}
}

// planCacheKey hashes the three inputs so arbitrary user text never ends up
// inside a redis key.
func planCacheKey(goals, constraints, backlog string) string {
	h := sha256.New()
	h.Write([]byte(goals))
	h.Write([]byte{0})
	h.Write([]byte(constraints))
	h.Write([]byte{0})
	h.Write([]byte(backlog))
	return "plan:" + hex.EncodeToString(h.Sum(nil))
}
