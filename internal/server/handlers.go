package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/emboss-gcode/internal/imaging"
	"github.com/ironsheep/emboss-gcode/internal/job"
	"github.com/ironsheep/emboss-gcode/internal/profile"
	"github.com/ironsheep/emboss-gcode/internal/solid"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "emboss_validate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// whose data names the kind of failure ("config", "geometry", "image" or
// "tool") and carries the error text.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", map[string]string{
			"kind":   errorKind(err),
			"detail": err.Error(),
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "emboss_image_info":
		return s.handleImageInfo(args)
	case "emboss_validate":
		return s.handleValidate(args)
	case "emboss_preview":
		return s.handlePreview(args)
	case "emboss_generate":
		return s.handleGenerate(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorKind classifies err by the typed error it wraps.
func errorKind(err error) string {
	var (
		ce *profile.ConfigError
		ge *solid.GeometryError
		ie *imaging.ImageError
	)
	switch {
	case errors.As(err, &ce):
		return "config"
	case errors.As(err, &ge):
		return "geometry"
	case errors.As(err, &ie):
		return "image"
	}
	return "tool"
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Toolpath ===

type embossArgs struct {
	Image        string  `json:"image"`
	Config       string  `json:"config"`
	Shape        string  `json:"shape"`
	Radius       float64 `json:"radius"`
	TopRadius    float64 `json:"top_radius"`
	BottomRadius float64 `json:"bottom_radius"`
	Height       float64 `json:"height"`
	BottomLayers int     `json:"bottom_layers"`
	EmbossFactor float64 `json:"emboss_factor"`
	ZSmooth      bool    `json:"zsmooth"`
	Invert       bool    `json:"invert"`
	Gamma        float64 `json:"gamma"`
	Contrast     float64 `json:"contrast"`
	Lightness    bool    `json:"lightness"`
	Region       string  `json:"region"`
	Crop         []int   `json:"crop"`
	Width        int     `json:"width"`
	Prefix       string  `json:"prefix"`
	Suffix       string  `json:"suffix"`
}

// defaultArgs returns the arguments a tool call starts from. Requests are
// decoded on top of it, so only fields the caller omits keep these values;
// an explicit zero reaches validation and is rejected there.
func (s *Server) defaultArgs() embossArgs {
	return embossArgs{
		Config:       s.defaultConfig,
		Radius:       25,
		TopRadius:    10,
		BottomRadius: 25,
		Height:       40,
		EmbossFactor: 0.40,
	}
}

// options converts the arguments into job options.
func (a *embossArgs) options() (job.Options, error) {
	var shape solid.Shape
	switch a.Shape {
	case "cylinder":
		shape = solid.Cylinder{Radius: a.Radius}
	case "cone":
		shape = solid.Cone{TopRadius: a.TopRadius, BottomRadius: a.BottomRadius}
	case "globe":
		shape = solid.Globe{Radius: a.Radius}
	default:
		return job.Options{}, fmt.Errorf("invalid shape: %q (must be cylinder, cone or globe)", a.Shape)
	}

	mode := imaging.LumaMode
	if a.Lightness {
		mode = imaging.LightnessMode
	}

	frame := imaging.Framing{Region: a.Region, Width: a.Width}
	if len(a.Crop) > 0 {
		if len(a.Crop) != 4 {
			return job.Options{}, fmt.Errorf("crop needs [x1, y1, x2, y2], got %d values", len(a.Crop))
		}
		frame.Rect = image.Rect(a.Crop[0], a.Crop[1], a.Crop[2], a.Crop[3])
	}

	return job.Options{
		ConfigPath: a.Config,
		ImagePath:  a.Image,
		PrefixPath: a.Prefix,
		SuffixPath: a.Suffix,
		Solid: solid.Spec{
			Shape:        shape,
			Height:       a.Height,
			BottomLayers: a.BottomLayers,
			EmbossFactor: a.EmbossFactor,
			Continuous:   a.ZSmooth,
		},
		Frame: frame,
		Gray: imaging.GrayOptions{
			Mode:     mode,
			Gamma:    a.Gamma,
			Contrast: a.Contrast,
			Invert:   a.Invert,
		},
	}, nil
}

func (s *Server) prepare(a *embossArgs) (*job.Job, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	return job.Prepare(opts, s.cache)
}

type validateResult struct {
	Valid bool `json:"valid"`
	job.Summary
}

func (s *Server) handleValidate(args json.RawMessage) (interface{}, error) {
	a := s.defaultArgs()
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	j, err := s.prepare(&a)
	if err != nil {
		return nil, err
	}
	return validateResult{Valid: true, Summary: j.Summary()}, nil
}

type previewArgs struct {
	embossArgs
	MaxWidth int `json:"max_width"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	a := previewArgs{embossArgs: s.defaultArgs(), MaxWidth: 400}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	j, err := s.prepare(&a.embossArgs)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(j.Sampler, j.Program.Solid.EmbossFactor, a.MaxWidth)
}

type generateArgs struct {
	embossArgs
	Output string `json:"output"`
}

type generateResult struct {
	Output string `json:"output"`
	Lines  int    `json:"lines"`
	job.Summary
}

func (s *Server) handleGenerate(args json.RawMessage) (interface{}, error) {
	a := generateArgs{embossArgs: s.defaultArgs()}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, errors.New("output path is required")
	}
	j, err := s.prepare(&a.embossArgs)
	if err != nil {
		return nil, err
	}
	n, err := j.WriteFile(context.Background(), a.Output)
	if err != nil {
		return nil, err
	}
	return generateResult{Output: a.Output, Lines: n, Summary: j.Summary()}, nil
}
