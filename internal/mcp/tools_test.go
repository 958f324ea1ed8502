package mcp

import "testing"

func TestDiscoveryListsBothTools(t *testing.T) {
	payload := Discovery()

	if payload.Name != ServerName {
		t.Fatalf("name = %q, want %q", payload.Name, ServerName)
	}
	if len(payload.Tools) != 2 {
		t.Fatalf("tools len = %d, want 2", len(payload.Tools))
	}
	if payload.Tools[0].Name != ToolGeneratePlan || payload.Tools[1].Name != ToolFormatBrief {
		t.Fatalf("tool names = %q, %q", payload.Tools[0].Name, payload.Tools[1].Name)
	}
}

func TestPlannerSchemaRequiredFields(t *testing.T) {
	schema := Discovery().Tools[0].InputSchema

	if got, want := len(schema.Required), 2; got != want {
		t.Fatalf("required len = %d, want %d", got, want)
	}
	if schema.Required[0] != "goals" || schema.Required[1] != "constraints" {
		t.Fatalf("required = %#v, want goals and constraints", schema.Required)
	}
	if _, ok := schema.Properties["backlog"]; !ok {
		t.Fatalf("backlog property missing from %#v", schema.Properties)
	}
}

func TestFormatterSchemaRequiredFields(t *testing.T) {
	schema := Discovery().Tools[1].InputSchema

	want := []string{"ranked_actions", "rationale_summary", "date"}
	if len(schema.Required) != len(want) {
		t.Fatalf("required = %#v, want %#v", schema.Required, want)
	}
	for i, field := range want {
		if schema.Required[i] != field {
			t.Fatalf("required[%d] = %q, want %q", i, schema.Required[i], field)
		}
	}
	items := schema.Properties["ranked_actions"].Items
	if items == nil || items.Type != "string" {
		t.Fatalf("ranked_actions items = %#v, want string items", items)
	}
}

func TestKnownTool(t *testing.T) {
	if !KnownTool(ToolGeneratePlan) || !KnownTool(ToolFormatBrief) {
		t.Fatal("served tools must be known")
	}
	if KnownTool("delete_everything") {
		t.Fatal("unknown tool reported as known")
	}
}
