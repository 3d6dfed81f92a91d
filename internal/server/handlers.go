package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ironsheep/distance-tools-mcp/internal/distancing"
	"github.com/ironsheep/distance-tools-mcp/internal/imaging"
)

// noDetections is the message distance_analyze returns for an empty frame.
const noDetections = "No detections in this image"

// strategy resolves a per-call strategy name, falling back to the config.
func (s *Server) strategy(name string) (distancing.Strategy, error) {
	if name == "" {
		return s.cfg.DefaultStrategy(), nil
	}
	return distancing.ParseStrategy(name)
}

// === Distance Handlers ===

func (s *Server) handleTraits(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TraitsInput,
) (*mcp.CallToolResult, TraitsOutput, error) {
	traits, err := distancing.ExtractAll(input.Boxes)
	if err != nil {
		return nil, TraitsOutput{}, err
	}
	return nil, TraitsOutput{Traits: traits, Count: len(traits)}, nil
}

func (s *Server) handleEstimate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input EstimateInput,
) (*mcp.CallToolResult, EstimateOutput, error) {
	strategy, err := s.strategy(input.Strategy)
	if err != nil {
		return nil, EstimateOutput{}, err
	}

	estimator, err := distancing.NewEstimator(strategy, s.cfg.Options())
	if err != nil {
		return nil, EstimateOutput{}, err
	}

	est, err := estimator.Estimate(input.Boxes)
	if err != nil {
		s.logger.Debug("estimate failed", zap.String("strategy", string(strategy)), zap.Error(err))
		return nil, EstimateOutput{}, err
	}

	s.logger.Debug("estimate",
		zap.String("strategy", string(strategy)),
		zap.Int("boxes", len(input.Boxes)),
	)

	return nil, EstimateOutput{
		Strategy:        string(est.Strategy),
		Unit:            string(est.Unit),
		Threshold:       est.Threshold,
		Distances:       est.Distances.Rows(),
		PixelDistances:  est.PixelDistances.Rows(),
		AverageDistance: est.AverageDistance,
	}, nil
}

func (s *Server) handleCountViolations(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CountViolationsInput,
) (*mcp.CallToolResult, ViolationsOutput, error) {
	threshold := input.ThresholdFt
	if threshold == 0 {
		threshold = s.cfg.ThresholdFt
	}
	if threshold < 0 {
		return nil, ViolationsOutput{}, fmt.Errorf("%w: threshold %v ft", distancing.ErrInvalidOptions, threshold)
	}

	v, err := distancing.CountViolations(input.Distances, threshold)
	if err != nil {
		return nil, ViolationsOutput{}, err
	}
	return nil, ViolationsOutput{Count: v.Count, Pairs: v.Pairs}, nil
}

func (s *Server) handleAnalyze(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	strategy, err := s.strategy(input.Strategy)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	out := AnalyzeOutput{
		Strategy:  string(strategy),
		Traits:    []distancing.Traits{},
		Distances: [][]float64{},
		Pairs:     []distancing.Pair{},
	}

	if input.ImagePath != "" {
		img, err := s.cache.Load(input.ImagePath)
		if err != nil {
			return nil, AnalyzeOutput{}, err
		}
		check := imaging.CheckBoxes(img, input.Boxes)
		if len(check.OutOfBounds) > 0 {
			s.logger.Warn("boxes extend past the frame",
				zap.String("image", input.ImagePath),
				zap.Ints("boxes", check.OutOfBounds),
			)
			out.OutOfBounds = check.OutOfBounds
		}
	}

	report, err := distancing.Analyze(input.Boxes, strategy, s.cfg.Options())
	if errors.Is(err, distancing.ErrEmptyInput) {
		s.logger.Info(noDetections)
		out.Message = noDetections
		return nil, out, nil
	}
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	out.Detections = report.Detections
	out.Traits = report.Traits
	out.Unit = string(report.Estimate.Unit)
	out.Threshold = report.Estimate.Threshold
	out.Distances = report.Estimate.Distances.Rows()
	out.AverageDistance = report.Estimate.AverageDistance
	out.Violations = report.Violations.Count
	out.Pairs = report.Violations.Pairs
	out.Message = fmt.Sprintf("%d of %d detections form %d pair(s) closer than the threshold",
		violators(report.Violations.Pairs), report.Detections, report.Violations.Count)

	s.logger.Debug("analyze",
		zap.String("strategy", string(strategy)),
		zap.Int("detections", report.Detections),
		zap.Int("violations", report.Violations.Count),
	)

	return nil, out, nil
}

// violators counts the distinct boxes that appear in at least one pair.
func violators(pairs []distancing.Pair) int {
	seen := make(map[int]struct{}, 2*len(pairs))
	for _, p := range pairs {
		seen[p.I] = struct{}{}
		seen[p.J] = struct{}{}
	}
	return len(seen)
}

// === Image Handlers ===

func (s *Server) handleImageDimensions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ImagePathInput,
) (*mcp.CallToolResult, imaging.DimensionsResult, error) {
	dims, err := imaging.GetDimensions(s.cache, input.Path)
	if err != nil {
		return nil, imaging.DimensionsResult{}, err
	}
	return nil, *dims, nil
}

func (s *Server) handleCropDetection(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CropDetectionInput,
) (*mcp.CallToolResult, imaging.CropResult, error) {
	scale := input.Scale
	if scale == 0 {
		scale = 1.0
	}

	img, err := s.cache.Load(input.Path)
	if err != nil {
		return nil, imaging.CropResult{}, err
	}

	crop, err := imaging.CropDetection(img, input.Box, input.Padding, scale)
	if err != nil {
		return nil, imaging.CropResult{}, err
	}
	return nil, *crop, nil
}

func (s *Server) handleCacheEvict(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CacheEvictInput,
) (*mcp.CallToolResult, CacheEvictOutput, error) {
	var evicted int
	if input.Path == "" {
		evicted = s.cache.Clear()
	} else if s.cache.Evict(input.Path) {
		evicted = 1
	}

	s.logger.Debug("cache evict", zap.String("path", input.Path), zap.Int("evicted", evicted))

	return nil, CacheEvictOutput{
		Evicted:  evicted,
		Cached:   s.cache.Len(),
		Capacity: s.cache.Capacity(),
	}, nil
}
