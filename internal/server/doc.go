// Package server implements the MCP (Model Context Protocol) server for border detection.
//
// This package provides a JSON-RPC 2.0 server that exposes entropy-based border
// detection through the MCP protocol, so MCP clients can find and remove
// letterboxes, pillarboxes and mattes around images and animations.
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
//   - image_load: Load image and get metadata
//   - image_scan_borders: Detect the border depth on each side
//   - image_crop_borders: Detect borders and crop them away
//   - image_outline_borders: Detect borders and draw guide lines along them
//   - image_margin_colors: Detect borders and report each margin's color
//
// Every scanning tool accepts the scan tuning arguments (threshold, indent,
// fast, rows, columns, frames, max_frames, resize, seed). Arguments left out
// fall back to the server configuration.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 (unusable arguments), -32000 (tool execution failure,
//     including rejected scan options) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Every tool call is logged with a unique call_id field.
//
// # Usage
//
//	srv := server.New(cfg, logrus.StandardLogger())
//	if err := srv.Run(ctx); err != nil {
//	    logrus.Fatal(err)
//	}
package server
