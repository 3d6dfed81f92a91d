package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ironsheep/distance-tools-mcp/internal/config"
	"github.com/ironsheep/distance-tools-mcp/internal/imaging"
)

// Version is reported to clients during the MCP handshake.
const Version = "0.1.0"

const configURI = "distance://config"

// Server exposes the distance estimators as MCP tools.
type Server struct {
	cfg    config.Config
	cache  *imaging.ImageCache
	logger *zap.Logger
	server *mcp.Server
}

// New creates a server for cfg. A nil logger disables logging.
func New(cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		cache:  imaging.NewImageCache(cfg.CacheFrames),
		logger: logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "distance-tools-mcp",
			Version: Version,
		}, nil),
	}

	s.registerTools()
	s.registerResources()

	return s
}

// Run serves MCP over stdin/stdout until ctx is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio",
		zap.String("version", Version),
		zap.String("strategy", string(s.cfg.DefaultStrategy())),
		zap.Float64("avg_height_ft", s.cfg.AvgHeightFt),
		zap.Float64("threshold_ft", s.cfg.ThresholdFt),
		zap.Int("cache_frames", s.cache.Capacity()),
	)
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// registerResources exposes the active configuration so clients can see
// which assumptions produced a result.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         configURI,
		Name:        "config",
		Description: "Reference height, safety threshold, default strategy and frame cache size in effect",
		MIMEType:    "application/json",
	}, s.handleConfigResource)
}

func (s *Server) handleConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(map[string]any{
		"avg_height_ft": s.cfg.AvgHeightFt,
		"threshold_ft":  s.cfg.ThresholdFt,
		"strategy":      s.cfg.DefaultStrategy(),
		"cache_frames":  s.cache.Capacity(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
