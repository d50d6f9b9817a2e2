package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty describes the path argument shared by every tool.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// scanProperties returns the input schema properties that tune a border scan.
// extra properties are merged in.
func scanProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty(),
		"threshold": map[string]interface{}{
			"type":        "number",
			"description": "Maximum margin/content entropy ratio accepted as a border, in (0, 1]. Default 0.5",
			"default":     0.5,
		},
		"indent": map[string]interface{}{
			"type":        "number",
			"description": "Maximum border depth as a fraction of the image dimension, in (0, 1]. Default 0.25",
			"default":     0.25,
		},
		"fast": map[string]interface{}{
			"type":        "boolean",
			"description": "Stop after the first refinement. Set false to keep refining nested mattes. Default true",
			"default":     true,
		},
		"row_sample": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of rows sampled for the left and right sides. 0 uses every row",
		},
		"column_sample": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of columns sampled for the top and bottom sides. 0 uses every column",
		},
		"frames": map[string]interface{}{
			"type":        "number",
			"description": "Fraction of animation frames to analyze, in (0, 1]. Default 1.0",
			"default":     1.0,
		},
		"max_frames": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of animation frames to analyze. 0 means no cap",
		},
		"resize": map[string]interface{}{
			"type":        "integer",
			"description": "Shrink the image to fit this size before scanning. 0 scans at full resolution. Default 300",
			"default":     300,
		},
		"seed": map[string]interface{}{
			"type":        "integer",
			"description": "Seed for row, column and frame sampling. Omit for a random seed",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also write the result to. The format follows the extension (.png, .jpg, .gif, .bmp, .tiff)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and frame count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_scan_borders",
			Description: "Detect uniform borders (letterbox, pillarbox, mattes) on each side of an image using entropy analysis. Returns the border depth in pixels per side.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": scanProperties(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_crop_borders",
			Description: "Detect borders and crop them away. Returns the cropped image as base64 (PNG, or GIF for animations).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": scanProperties(map[string]interface{}{
					"output_path": outputPathProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_outline_borders",
			Description: "Detect borders and draw dotted guide lines along them. Returns the outlined image as base64.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": scanProperties(map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Guide line color as hex (#RRGGBB or #RRGGBBAA)",
						"default":     "#FF0000",
					},
					"output_path": outputPathProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_margin_colors",
			Description: "Detect borders and report the dominant color of each margin.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": scanProperties(nil),
				"required":   []string{"path"},
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
