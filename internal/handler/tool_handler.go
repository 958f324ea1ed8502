package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"leveragebrief/internal/mcp"
	"leveragebrief/internal/service"
	"leveragebrief/pkg/metrics"
)

// ToolHandler serves the discovery listing and routes tool invocations.
//
// Routing is defensive on purpose: scanners and crawlers probe this surface
// with arbitrary bodies, and every request we cannot confidently route gets a
// 200 with the static discovery payload instead of an error.
type ToolHandler struct {
	planService *service.PlanService
	logger      *zap.Logger
}

func NewToolHandler(planService *service.PlanService, logger *zap.Logger) *ToolHandler {
	return &ToolHandler{
		planService: planService,
		logger:      logger,
	}
}

// invokeEnvelope covers both accepted request shapes: an explicit
// {tool, arguments} envelope and bare tool fields at the top level.
type invokeEnvelope struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments"`

	planArgs
	briefArgs
}

type planArgs struct {
	Goals       *string `json:"goals"`
	Constraints string  `json:"constraints"`
	Backlog     string  `json:"backlog"`
}

type briefArgs struct {
	RankedActions    []string `json:"ranked_actions"`
	RationaleSummary string   `json:"rationale_summary"`
	Date             string   `json:"date"`
}

// Discover handles GET /mcp and POST /mcp/tools/list.
func (h *ToolHandler) Discover(c *gin.Context) {
	metrics.IncrementDiscovery("list")
	c.JSON(http.StatusOK, mcp.Discovery())
}

// Invoke handles POST /mcp.
func (h *ToolHandler) Invoke(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		h.fallback(c, "empty_body")
		return
	}

	var req invokeEnvelope
	if err := json.Unmarshal(body, &req); err != nil {
		h.fallback(c, "bad_json")
		return
	}

	switch {
	case req.Tool != "":
		h.invokeNamed(c, req)
	case req.Goals != nil:
		h.generatePlan(c, req.planArgs)
	case req.RankedActions != nil:
		h.formatBrief(c, req.briefArgs)
	default:
		h.fallback(c, "no_tool_fields")
	}
}

func (h *ToolHandler) invokeNamed(c *gin.Context, req invokeEnvelope) {
	if !mcp.KnownTool(req.Tool) {
		h.fallback(c, "unknown_tool")
		return
	}

	switch req.Tool {
	case mcp.ToolGeneratePlan:
		var args planArgs
		if len(req.Arguments) > 0 {
			if err := json.Unmarshal(req.Arguments, &args); err != nil {
				h.fallback(c, "bad_arguments")
				return
			}
		} else {
			args = req.planArgs
		}
		h.generatePlan(c, args)
	case mcp.ToolFormatBrief:
		var args briefArgs
		if len(req.Arguments) > 0 {
			if err := json.Unmarshal(req.Arguments, &args); err != nil {
				h.fallback(c, "bad_arguments")
				return
			}
		} else {
			args = req.briefArgs
		}
		h.formatBrief(c, args)
	}
}

func (h *ToolHandler) generatePlan(c *gin.Context, args planArgs) {
	goals := ""
	if args.Goals != nil {
		goals = *args.Goals
	}

	result := h.planService.GeneratePlan(c.Request.Context(), goals, args.Constraints, args.Backlog)

	h.logger.Info("Tool invoked",
		zap.String("tool", mcp.ToolGeneratePlan),
		zap.Int("ranked", len(result.RankedActions)),
		zap.Int("excluded", len(result.ExcludedActions)),
	)

	c.JSON(http.StatusOK, result)
}

func (h *ToolHandler) formatBrief(c *gin.Context, args briefArgs) {
	if args.RankedActions == nil {
		args.RankedActions = []string{}
	}
	if args.Date == "" {
		// 核心函数不读时钟，缺省日期由这里补
		args.Date = time.Now().UTC().Format("2006-01-02")
	}

	brief := h.planService.FormatBrief(c.Request.Context(), args.RankedActions, args.RationaleSummary, args.Date)

	h.logger.Info("Tool invoked",
		zap.String("tool", mcp.ToolFormatBrief),
		zap.Int("actions", len(args.RankedActions)),
	)

	c.JSON(http.StatusOK, gin.H{"brief": brief})
}

// fallback answers with the discovery payload whenever the request cannot be
// routed to a tool. Availability over correctness for scanner traffic.
func (h *ToolHandler) fallback(c *gin.Context, reason string) {
	metrics.IncrementDiscovery("fallback")
	h.logger.Debug("Serving discovery fallback", zap.String("reason", reason))
	c.JSON(http.StatusOK, mcp.Discovery())
}
