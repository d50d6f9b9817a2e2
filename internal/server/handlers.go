package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/enimda-mcp/internal/border"
	"github.com/ironsheep/enimda-mcp/internal/config"
	"github.com/ironsheep/enimda-mcp/internal/imaging"
)

// errInvalidArguments marks tool arguments that could not be used at all.
var errInvalidArguments = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_scan_borders").
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
// Unusable arguments return -32602; any other tool failure returns -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	entry := s.log.WithFields(logrus.Fields{
		"call_id": uuid.NewString(),
		"tool":    params.Name,
	})
	start := time.Now()

	result, err := s.executeTool(ctx, entry, params.Name, params.Arguments)
	if err != nil {
		entry.WithError(err).Warn("Tool execution failed")
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	entry.WithField("elapsed", time.Since(start)).Debug("Tool executed")

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Overlays scan arguments on the server configuration
//  3. Loads the image from cache
//  4. Scans for borders and applies the requested imaging operation
func (s *Server) executeTool(ctx context.Context, log logrus.FieldLogger, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_scan_borders":
		return s.handleScanBorders(ctx, log, args)
	case "image_crop_borders":
		return s.handleCropBorders(ctx, log, args)
	case "image_outline_borders":
		return s.handleOutlineBorders(ctx, log, args)
	case "image_margin_colors":
		return s.handleMarginColors(ctx, log, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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

// decodeArgs unmarshals tool arguments and checks the required path.
func decodeArgs(args json.RawMessage, v interface{ path() string }) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing arguments", errInvalidArguments)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	if v.path() == "" {
		return fmt.Errorf("%w: path is required", errInvalidArguments)
	}
	return nil
}

// === Image Information ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a *imageLoadArgs) path() string { return a.Path }

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Border Scanning ===

// scanArgs are the arguments shared by every scanning tool. Unset fields
// fall back to the server configuration.
type scanArgs struct {
	Path         string   `json:"path"`
	Threshold    *float64 `json:"threshold"`
	Indent       *float64 `json:"indent"`
	Fast         *bool    `json:"fast"`
	RowSample    *int     `json:"row_sample"`
	ColumnSample *int     `json:"column_sample"`
	Frames       *float64 `json:"frames"`
	MaxFrames    *int     `json:"max_frames"`
	Resize       *int     `json:"resize"`
	Seed         *uint64  `json:"seed"`
}

func (a *scanArgs) path() string { return a.Path }

// overlay returns a copy of base with every argument that is set applied.
func (a *scanArgs) overlay(base *config.Config) *config.Config {
	cfg := *base
	if a.Threshold != nil {
		cfg.Threshold = a.Threshold
	}
	if a.Indent != nil {
		cfg.Indent = a.Indent
	}
	if a.Fast != nil {
		cfg.Fast = a.Fast
	}
	if a.RowSample != nil {
		cfg.RowSample = a.RowSample
	}
	if a.ColumnSample != nil {
		cfg.ColumnSample = a.ColumnSample
	}
	if a.Frames != nil {
		cfg.Frames = a.Frames
	}
	if a.MaxFrames != nil {
		cfg.MaxFrames = a.MaxFrames
	}
	if a.Resize != nil {
		cfg.Resize = a.Resize
	}
	if a.Seed != nil {
		cfg.Seed = a.Seed
	}
	return &cfg
}

// ScanResult is returned by image_scan_borders.
type ScanResult struct {
	Top            int     `json:"top"`
	Right          int     `json:"right"`
	Bottom         int     `json:"bottom"`
	Left           int     `json:"left"`
	HasBorders     bool    `json:"has_borders"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Multiplier     float64 `json:"multiplier"`
	FrameCount     int     `json:"frame_count"`
	FramesAnalyzed int     `json:"frames_analyzed"`
}

// scan loads the image named by a and runs a border scan on it.
func (s *Server) scan(ctx context.Context, log logrus.FieldLogger, a *scanArgs) (*imaging.Image, *ScanResult, error) {
	cfg := a.overlay(s.cfg)
	if resize := cfg.GetResize(); resize < 0 {
		return nil, nil, fmt.Errorf("resize must be non-negative, got %d", resize)
	}

	opts, err := cfg.ScanOptions()
	if err != nil {
		return nil, nil, err
	}
	detector, err := border.New(opts, cfg.DetectorOptions()...)
	if err != nil {
		return nil, nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}

	analysis := imaging.Prepare(img, cfg.GetResize())
	res, err := detector.ScanDetailed(ctx, analysis.Frames, analysis.Multiplier)
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(logrus.Fields{
		"borders":    res.Borders.String(),
		"frames":     len(res.Frames),
		"multiplier": analysis.Multiplier,
	}).Debug("Borders scanned")

	bounds := img.Bounds()
	b := res.Borders
	return img, &ScanResult{
		Top:            b.Top,
		Right:          b.Right,
		Bottom:         b.Bottom,
		Left:           b.Left,
		HasBorders:     b.HasBorders(),
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		Multiplier:     analysis.Multiplier,
		FrameCount:     len(img.Frames),
		FramesAnalyzed: len(res.Frames),
	}, nil
}

func (r *ScanResult) borders() border.Borders {
	return border.Borders{Top: r.Top, Right: r.Right, Bottom: r.Bottom, Left: r.Left}
}

func (s *Server) handleScanBorders(ctx context.Context, log logrus.FieldLogger, args json.RawMessage) (interface{}, error) {
	var a scanArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	_, result, err := s.scan(ctx, log, &a)
	return result, err
}

type cropBordersArgs struct {
	scanArgs
	OutputPath string `json:"output_path"`
}

func (s *Server) handleCropBorders(ctx context.Context, log logrus.FieldLogger, args json.RawMessage) (interface{}, error) {
	var a cropBordersArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, scanned, err := s.scan(ctx, log, &a.scanArgs)
	if err != nil {
		return nil, err
	}
	result, err := imaging.Crop(img, scanned.borders(), a.OutputPath)
	if err != nil {
		return nil, err
	}
	s.evictSaved(a.OutputPath)
	return result, nil
}

type outlineBordersArgs struct {
	scanArgs
	Color      string `json:"color"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleOutlineBorders(ctx context.Context, log logrus.FieldLogger, args json.RawMessage) (interface{}, error) {
	var a outlineBordersArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = s.cfg.GetOutlineColor()
	}
	img, scanned, err := s.scan(ctx, log, &a.scanArgs)
	if err != nil {
		return nil, err
	}
	result, err := imaging.Outline(img, scanned.borders(), a.Color, a.OutputPath)
	if err != nil {
		return nil, err
	}
	s.evictSaved(a.OutputPath)
	return result, nil
}

// evictSaved drops a just-written output file from the cache so that a later
// call never sees the image it replaced.
func (s *Server) evictSaved(path string) {
	if path != "" {
		s.cache.Evict(path)
	}
}

func (s *Server) handleMarginColors(ctx context.Context, log logrus.FieldLogger, args json.RawMessage) (interface{}, error) {
	var a scanArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, scanned, err := s.scan(ctx, log, &a)
	if err != nil {
		return nil, err
	}
	return imaging.MarginColors(img, scanned.borders())
}
