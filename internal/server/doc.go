// Package server implements the MCP (Model Context Protocol) server for the
// emboss toolpath generator.
//
// This package provides a JSON-RPC 2.0 server that exposes toolpath
// generation through the MCP protocol, so an MCP client can inspect
// artwork, check a solid against the machine and write G-code.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - emboss_image_info: Image size, format and segment count
//   - emboss_validate: Validate a solid and artwork, report layer and segment counts
//   - emboss_preview: Render the sampled luminance field as PNG
//   - emboss_generate: Write the G-code program to a file
//
// The toolpath tools share one argument set: image, config, shape, radius,
// top_radius, bottom_radius, height, bottom_layers, emboss_factor, zsmooth,
// invert, gamma, contrast, lightness, region, crop, width, prefix and suffix.
// Omitted numbers take the same defaults as the command line.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded artwork keyed by path.
// The cache persists for the lifetime of the server process, so previewing
// and then generating from the same file decodes it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: {"kind": "config"|"geometry"|"image"|"tool", "detail": "<error>"}
//
// # Usage
//
//	srv := server.New("configs/bfb3000.yaml", version)
//	if err := srv.Run(); err != nil {
//	    return err
//	}
package server
