package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/distance-tools-mcp/internal/config"
	"github.com/ironsheep/distance-tools-mcp/internal/distancing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New(config.Default(), nil)
	require.NotNil(t, s)
	return s
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	assert.NotNil(t, s.cache)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.server)
	assert.Equal(t, config.Default(), s.cfg)
}

func TestServer_handleConfigResource(t *testing.T) {
	cfg := config.Default()
	cfg.ThresholdFt = 2
	cfg.Strategy = "depth-ratio"
	s := New(cfg, nil)

	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: configURI}}
	res, err := s.handleConfigResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, configURI, res.Contents[0].URI)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &got))
	assert.Equal(t, 5.4, got["avg_height_ft"])
	assert.Equal(t, 2.0, got["threshold_ft"])
	assert.Equal(t, "depth-ratio", got["strategy"])
	assert.Equal(t, 16.0, got["cache_frames"])
}

// connect runs s over an in-memory transport and returns a client session.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ss, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

// callTool invokes a tool over the session and decodes its structured output.
func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s returned an error: %+v", name, res.Content)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestServer_TupleBoxes(t *testing.T) {
	cs := connect(t, newTestServer(t))
	tuples := []any{
		[]float64{0, 0, 10, 10},
		[]float64{0, 10, 10, 20},
		map[string]float64{"top": 0, "left": 200, "bottom": 10, "right": 210},
	}

	t.Run("distance_analyze", func(t *testing.T) {
		var out AnalyzeOutput
		callTool(t, cs, "distance_analyze", map[string]any{"boxes": tuples}, &out)
		assert.Equal(t, 3, out.Detections)
		assert.Equal(t, 1, out.Violations)
		assert.Equal(t, []distancing.Pair{{I: 0, J: 1}}, out.Pairs)
	})

	t.Run("distance_estimate", func(t *testing.T) {
		var out EstimateOutput
		callTool(t, cs, "distance_estimate", map[string]any{"boxes": tuples, "strategy": "depth-ratio"}, &out)
		assert.Equal(t, "ratio", out.Unit)
		require.Len(t, out.Distances, 3)
		assert.InDelta(t, 1.0, out.Distances[0][1], 1e-9)
	})

	t.Run("distance_traits", func(t *testing.T) {
		var out TraitsOutput
		callTool(t, cs, "distance_traits", map[string]any{"boxes": tuples[:1]}, &out)
		assert.Equal(t, []distancing.Traits{{Height: 10, Width: 10, CenterX: 5, CenterY: 5}}, out.Traits)
	})

	t.Run("wrong tuple length is rejected", func(t *testing.T) {
		res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
			Name:      "distance_analyze",
			Arguments: map[string]any{"boxes": []any{[]float64{0, 0, 10}}},
		})
		if err == nil {
			assert.True(t, res.IsError)
		}
	})
}

func TestServer_CropDetectionTupleBox(t *testing.T) {
	cs := connect(t, newTestServer(t))
	path := writeFrame(t, 64, 32)

	var out struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	callTool(t, cs, "image_crop_detection", map[string]any{
		"path": path,
		"box":  []float64{4, 8, 20, 16},
	}, &out)
	assert.Equal(t, 8, out.Width)
	assert.Equal(t, 16, out.Height)
}
