package mcp

// Tool identifiers exposed by this server.
const (
	ToolGeneratePlan = "generate_plan"
	ToolFormatBrief  = "format_brief"
)

const (
	ServerName    = "daily-leverage-brief"
	ServerVersion = "1.0.0"
)

// Property is one field of a tool's input schema.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// InputSchema is a JSON-schema-shaped object declaration.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Tool describes one callable tool for discovery responses.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"input_schema"`
}

// DiscoveryPayload is the full listing response. It is static and safe to
// serve to any unauthenticated probe.
type DiscoveryPayload struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Tools   []Tool `json:"tools"`
}

var tools = []Tool{
	{
		Name: ToolGeneratePlan,
		Description: "Rank today's candidate actions by combined leverage, reversibility, " +
			"and learning value. Returns the selected actions, the excluded remainder, " +
			"the single irreversible bet, and a rationale summary.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"goals":       {Type: "string", Description: "What today should achieve."},
				"constraints": {Type: "string", Description: "Hard constraints on the day, e.g. available time."},
				"backlog":     {Type: "string", Description: "Optional newline-separated backlog items."},
			},
			Required: []string{"goals", "constraints"},
		},
	},
	{
		Name: ToolFormatBrief,
		Description: "Format a ranked action list and rationale into the plain-text " +
			"Daily Leverage Brief document.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"ranked_actions":    {Type: "array", Description: "Action texts in rank order.", Items: &Property{Type: "string"}},
				"rationale_summary": {Type: "string", Description: "Rationale paragraph to include verbatim."},
				"date":              {Type: "string", Description: "Date for the brief title, YYYY-MM-DD."},
			},
			Required: []string{"ranked_actions", "rationale_summary", "date"},
		},
	},
}

// Discovery returns the static tool listing.
func Discovery() DiscoveryPayload {
	return DiscoveryPayload{
		Name:    ServerName,
		Version: ServerVersion,
		Tools:   tools,
	}
}

// KnownTool reports whether name identifies one of the served tools.
func KnownTool(name string) bool {
	for _, t := range tools {
		if t.Name == name {
			return true
		}
	}
	return false
}
