package server

import (
	"testing"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"emboss_image_info",
		"emboss_validate",
		"emboss_preview",
		"emboss_generate",
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || len(props) == 0 {
				t.Fatal("InputSchema properties missing")
			}

			// Every required parameter must be described.
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"emboss_image_info": {"path"},
		"emboss_validate":   {"image", "shape"},
		"emboss_preview":    {"image", "shape"},
		"emboss_generate":   {"image", "shape", "output"},
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			got, _ := toolByName(t, name).InputSchema["required"].([]string)
			if len(got) != len(want) {
				t.Fatalf("required: got %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("required: got %v, want %v", got, want)
				}
			}
		})
	}
}

func TestToolDefinitions_ShapeEnum(t *testing.T) {
	props := toolByName(t, "emboss_generate").InputSchema["properties"].(map[string]interface{})
	shape, ok := props["shape"].(map[string]interface{})
	if !ok {
		t.Fatal("shape property should exist and be a map")
	}
	enum, ok := shape["enum"].([]string)
	if !ok {
		t.Fatal("shape should have enum")
	}

	want := map[string]bool{"cylinder": true, "cone": true, "globe": true}
	for _, e := range enum {
		delete(want, e)
	}
	for missing := range want {
		t.Errorf("shape enum is missing %q", missing)
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	expected := map[string]interface{}{
		"radius":        25.0,
		"top_radius":    10.0,
		"bottom_radius": 25.0,
		"height":        40.0,
		"bottom_layers": 0,
		"emboss_factor": 0.40,
	}

	for _, name := range []string{"emboss_validate", "emboss_preview", "emboss_generate"} {
		props := toolByName(t, name).InputSchema["properties"].(map[string]interface{})
		for param, want := range expected {
			p, ok := props[param].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found", name, param)
				continue
			}
			if p["default"] != want {
				t.Errorf("%s.%s: default got %v, want %v", name, param, p["default"], want)
			}
		}
	}

	preview := toolByName(t, "emboss_preview").InputSchema["properties"].(map[string]interface{})
	if p := preview["max_width"].(map[string]interface{}); p["default"] != 400 {
		t.Errorf("emboss_preview.max_width: default got %v", p["default"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(testConfig, "0.1.0")
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}

func TestDefaultArgs_MatchSchema(t *testing.T) {
	a := New(testConfig, "0.1.0").defaultArgs()
	if a.Config != testConfig {
		t.Errorf("config: got %q, want %q", a.Config, testConfig)
	}

	props := toolByName(t, "emboss_validate").InputSchema["properties"].(map[string]interface{})
	got := map[string]float64{
		"radius":        a.Radius,
		"top_radius":    a.TopRadius,
		"bottom_radius": a.BottomRadius,
		"height":        a.Height,
		"emboss_factor": a.EmbossFactor,
	}
	for param, v := range got {
		if want := props[param].(map[string]interface{})["default"]; want != v {
			t.Errorf("%s: default args %v, schema %v", param, v, want)
		}
	}
}
