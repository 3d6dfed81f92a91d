package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ironsheep/distance-tools-mcp/internal/distancing"
)

// TraitsInput is the input schema for distance_traits.
type TraitsInput struct {
	Boxes []distancing.BoundingBox `json:"boxes" jsonschema:"detections in pixel coordinates; list position is each box's id"`
}

// TraitsOutput lists the traits of each box, aligned by index.
type TraitsOutput struct {
	Traits []distancing.Traits `json:"traits"`
	Count  int                 `json:"count"`
}

// EstimateInput is the input schema for distance_estimate.
type EstimateInput struct {
	Boxes    []distancing.BoundingBox `json:"boxes" jsonschema:"detections in pixel coordinates; list position is each box's id"`
	Strategy string                   `json:"strategy,omitempty" jsonschema:"simple-average (feet) or depth-ratio (dimensionless); defaults to the configured strategy"`
}

// EstimateOutput is the pairwise estimate for a box set.
type EstimateOutput struct {
	Strategy        string      `json:"strategy"`
	Unit            string      `json:"unit"`
	Threshold       float64     `json:"threshold"`
	Distances       [][]float64 `json:"distances"`
	PixelDistances  [][]float64 `json:"pixel_distances"`
	AverageDistance *float64    `json:"average_distance,omitempty"`
}

// CountViolationsInput is the input schema for distance_count_violations.
type CountViolationsInput struct {
	Distances   [][]float64 `json:"distances,omitempty" jsonschema:"square pairwise distance matrix in feet; only the upper triangle is read"`
	ThresholdFt float64     `json:"threshold_ft,omitempty" jsonschema:"safe separation in feet; defaults to the configured threshold"`
}

// ViolationsOutput lists each too-close pair once, with I < J.
type ViolationsOutput struct {
	Count int               `json:"count"`
	Pairs []distancing.Pair `json:"pairs"`
}

// AnalyzeInput is the input schema for distance_analyze.
type AnalyzeInput struct {
	Boxes     []distancing.BoundingBox `json:"boxes" jsonschema:"detections in pixel coordinates; list position is each box's id"`
	Strategy  string                   `json:"strategy,omitempty" jsonschema:"simple-average or depth-ratio; defaults to the configured strategy"`
	ImagePath string                   `json:"image_path,omitempty" jsonschema:"optional frame the boxes came from, used to flag boxes outside it"`
}

// AnalyzeOutput is the full report for one frame.
type AnalyzeOutput struct {
	Strategy        string              `json:"strategy"`
	Detections      int                 `json:"detections"`
	Message         string              `json:"message"`
	Traits          []distancing.Traits `json:"traits"`
	Unit            string              `json:"unit,omitempty"`
	Threshold       float64             `json:"threshold,omitempty"`
	Distances       [][]float64         `json:"distances"`
	AverageDistance *float64            `json:"average_distance,omitempty"`
	Violations      int                 `json:"violations"`
	Pairs           []distancing.Pair   `json:"pairs"`
	OutOfBounds     []int               `json:"out_of_bounds,omitempty"`
}

// ImagePathInput is the input schema for image_dimensions.
type ImagePathInput struct {
	Path string `json:"path" jsonschema:"absolute path to the frame image"`
}

// CropDetectionInput is the input schema for image_crop_detection.
type CropDetectionInput struct {
	Path    string                 `json:"path" jsonschema:"absolute path to the frame image"`
	Box     distancing.BoundingBox `json:"box" jsonschema:"the detection to crop"`
	Padding int                    `json:"padding,omitempty" jsonschema:"extra pixels on every side (default 0)"`
	Scale   float64                `json:"scale,omitempty" jsonschema:"resize factor for the crop (default 1.0)"`
}

// CacheEvictInput is the input schema for image_cache_evict.
type CacheEvictInput struct {
	Path string `json:"path,omitempty" jsonschema:"frame to drop from the cache; omit to drop every cached frame"`
}

// CacheEvictOutput reports what image_cache_evict released.
type CacheEvictOutput struct {
	Evicted  int `json:"evicted"`
	Cached   int `json:"cached"`
	Capacity int `json:"capacity"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "distance_traits",
		Description: "Compute height, width and center of each bounding box.",
		InputSchema: inputSchema[TraitsInput](),
	}, s.handleTraits)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "distance_estimate",
		Description: "Estimate the pairwise distance between detected people from their bounding boxes. " +
			"simple-average returns feet; depth-ratio returns a dimensionless ratio compared against threshold.",
		InputSchema: inputSchema[EstimateInput](),
	}, s.handleEstimate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "distance_count_violations",
		Description: "Count the pairs in a precomputed distance matrix (feet) that are closer than the safety threshold.",
	}, s.handleCountViolations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "distance_analyze",
		Description: "Estimate distances between all detected people in a frame and report the pairs " +
			"that are not socially distanced.",
		InputSchema: inputSchema[AnalyzeInput](),
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "image_dimensions",
		Description: "Get the width and height of a frame image.",
	}, s.handleImageDimensions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "image_crop_detection",
		Description: "Crop one detection out of its frame and return it as base64-encoded PNG.",
		InputSchema: inputSchema[CropDetectionInput](),
	}, s.handleCropDetection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "image_cache_evict",
		Description: "Release decoded frames held by the server, one path or all of them. " +
			"The cache is bounded, so this is only needed to free memory early.",
	}, s.handleCacheEvict)
}
