package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/distance-tools-mcp/internal/distancing"
)

var analyzeCompact bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze one frame's detections",
	Long: `Reads a JSON list of bounding boxes from file, or stdin when no file is
given, and prints the distance report as JSON.

Boxes may be objects or detector-style tuples:
  [[0, 0, 10, 10], {"top": 0, "left": 10, "bottom": 10, "right": 20}]
  {"boxes": [[0, 0, 10, 10], [0, 10, 10, 20]]}`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeCompact, "compact", false, "print the report on one line")
	rootCmd.AddCommand(analyzeCmd)
}

// emptyReport is printed for a frame with no detections.
type emptyReport struct {
	Strategy   distancing.Strategy `json:"strategy"`
	Detections int                 `json:"detections"`
	Message    string              `json:"message"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening boxes: %w", err)
		}
		defer f.Close()
		in = f
	}

	boxes, err := distancing.DecodeBoxes(in)
	if err != nil {
		return err
	}

	strategy := cfg.DefaultStrategy()
	report, err := distancing.Analyze(boxes, strategy, cfg.Options())
	if errors.Is(err, distancing.ErrEmptyInput) {
		logger.Info("No detections in this image")
		return writeJSON(cmd, emptyReport{
			Strategy: strategy,
			Message:  "No detections in this image",
		})
	}
	if err != nil {
		return err
	}

	logger.Debug("analyzed frame",
		zap.String("strategy", string(strategy)),
		zap.Int("detections", report.Detections),
		zap.Int("violations", report.Violations.Count),
	)
	return writeJSON(cmd, report)
}

func writeJSON(cmd *cobra.Command, v any) error {
	var (
		data []byte
		err  error
	)
	if analyzeCompact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
