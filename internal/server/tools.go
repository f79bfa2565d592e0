package server

import "github.com/ironsheep/emboss-gcode/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// embossProperties are the arguments shared by every tool that builds a
// toolpath.
func embossProperties() map[string]interface{} {
	return map[string]interface{}{
		"image": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the artwork (PNG, JPEG, GIF, BMP, TIFF, WebP or SVG)",
		},
		"config": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the machine profile YAML. Defaults to the server's profile",
		},
		"shape": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"cylinder", "cone", "globe"},
			"description": "Solid of revolution to emboss",
		},
		"radius": map[string]interface{}{
			"type":        "number",
			"description": "Radius in mm for cylinder and globe. Default 25",
			"default":     25.0,
		},
		"top_radius": map[string]interface{}{
			"type":        "number",
			"description": "Cone top radius in mm. Default 10",
			"default":     10.0,
		},
		"bottom_radius": map[string]interface{}{
			"type":        "number",
			"description": "Cone bottom radius in mm. Default 25",
			"default":     25.0,
		},
		"height": map[string]interface{}{
			"type":        "number",
			"description": "Height of the embossed wall in mm. Default 40",
			"default":     40.0,
		},
		"bottom_layers": map[string]interface{}{
			"type":        "integer",
			"description": "Spiral floor layers under the wall (0-10). Default 0",
			"default":     0,
		},
		"emboss_factor": map[string]interface{}{
			"type":        "number",
			"description": "Feed-rate ratio at full black (0.25-1.00). Lower values give deeper relief. Default 0.40",
			"default":     0.40,
		},
		"zsmooth": map[string]interface{}{
			"type":        "boolean",
			"description": "Print the wall as one continuous helix instead of discrete layers",
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Invert the artwork so light areas stand proud",
		},
		"gamma": map[string]interface{}{
			"type":        "number",
			"description": "Gamma correction applied before sampling; values above 1 brighten mid-tones",
		},
		"contrast": map[string]interface{}{
			"type":        "number",
			"description": "Contrast change in [-1, 1] applied before sampling",
		},
		"lightness": map[string]interface{}{
			"type":        "boolean",
			"description": "Use perceptual CIE L* lightness instead of luma",
		},
		"region": map[string]interface{}{
			"type":        "string",
			"enum":        imaging.Regions,
			"description": "Emboss only a named region of the artwork",
		},
		"crop": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer"},
			"minItems":    4,
			"maxItems":    4,
			"description": "Crop the artwork to [x1, y1, x2, y2] pixels, after region",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Resample the artwork to this width; sets the segments per layer",
		},
		"prefix": map[string]interface{}{
			"type":        "string",
			"description": "G-code file copied before the program",
		},
		"suffix": map[string]interface{}{
			"type":        "string",
			"description": "G-code file copied after the program",
		},
	}
}

func withProperties(extra map[string]interface{}) map[string]interface{} {
	props := embossProperties()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "emboss_image_info",
			Description: "Load artwork and report its size, format and how many angular segments it gives. Images narrower than 20 pixels cannot be embossed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "emboss_validate",
			Description: "Check that a solid fits the machine and the artwork can be sampled, without generating anything. Returns the layer and segment counts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": embossProperties(),
				"required":   []string{"image", "shape"},
			},
		},
		{
			Name:        "emboss_preview",
			Description: "Render the luminance field as the printer will see it, one pixel per segment and layer, as a base64-encoded PNG. Brightness shows the relative feed rate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Scale the preview down to at most this many pixels wide. Default 400",
						"default":     400,
					},
				}),
				"required": []string{"image", "shape"},
			},
		},
		{
			Name:        "emboss_generate",
			Description: "Generate the G-code toolpath for an embossed solid and write it to a file. The file is replaced only when generation succeeds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the G-code file to write",
					},
				}),
				"required": []string{"image", "shape", "output"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
