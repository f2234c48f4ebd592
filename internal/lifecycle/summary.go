package lifecycle

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/swarm/internal/board"
	"github.com/felixgeelhaar/swarm/internal/pipeline"
)

// SummaryFile is the final artifact name written at the output stage
const SummaryFile = "swarm-summary.json"

// Summary is the final run artifact: every feature's outcome, the board
// totals, and the aggregate score.
type Summary struct {
	ProjectName string                   `json:"project_name"`
	CompletedAt time.Time                `json:"completed_at"`
	Features    []pipeline.FeatureResult `json:"features"`
	TaskBoard   board.Stats              `json:"task_board"`
	GlobalScore int                      `json:"global_score"`
}

// GlobalScore is the rounded mean review score over all processed
// features, failed ones included. Zero features yields zero.
func GlobalScore(results []pipeline.FeatureResult) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.ReviewScore
	}
	return int(math.Round(float64(sum) / float64(len(results))))
}

// WriteSummary persists the summary under outputPath
func WriteSummary(outputPath string, summary *Summary) (string, error) {
	if err := os.MkdirAll(outputPath, 0750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(outputPath, SummaryFile)
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write run summary: %w", err)
	}

	return path, nil
}

// ReadSummary loads a previously written summary
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run summary: %w", err)
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("unmarshal run summary: %w", err)
	}

	return &summary, nil
}
