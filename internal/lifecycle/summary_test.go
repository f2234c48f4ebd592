package lifecycle

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/swarm/internal/board"
	"github.com/felixgeelhaar/swarm/internal/pipeline"
)

func TestGlobalScore(t *testing.T) {
	tests := []struct {
		name    string
		results []pipeline.FeatureResult
		want    int
	}{
		{
			name: "rounded mean",
			results: []pipeline.FeatureResult{
				{FeatureID: "a", ReviewScore: 90},
				{FeatureID: "b", ReviewScore: 70},
			},
			want: 80,
		},
		{
			name:    "no processed features",
			results: nil,
			want:    0,
		},
		{
			name: "single feature",
			results: []pipeline.FeatureResult{
				{FeatureID: "a", ReviewScore: 88},
			},
			want: 88,
		},
		{
			name: "failed features count at their last score",
			results: []pipeline.FeatureResult{
				{FeatureID: "a", Success: true, ReviewScore: 90},
				{FeatureID: "b", Success: false, ReviewScore: 0},
			},
			want: 45,
		},
		{
			name: "rounds half up",
			results: []pipeline.FeatureResult{
				{FeatureID: "a", ReviewScore: 90},
				{FeatureID: "b", ReviewScore: 85},
			},
			want: 88,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GlobalScore(tt.results))
		})
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	dir := t.TempDir()

	results := []pipeline.FeatureResult{
		{FeatureID: "auth", Success: true, Iterations: 2, ReviewScore: 92, Notes: []string{"iteration 1: review score 80 below 85"}},
		{FeatureID: "profile", Success: false, Iterations: 3, ReviewScore: 60},
	}
	original := &Summary{
		ProjectName: "demo",
		CompletedAt: time.Now().UTC().Truncate(time.Second),
		Features:    results,
		TaskBoard:   board.Stats{Total: 5, Done: 3, Failed: 2},
		GlobalScore: GlobalScore(results),
	}

	path, err := WriteSummary(dir, original)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SummaryFile), path)

	loaded, err := ReadSummary(path)
	require.NoError(t, err)

	assert.Equal(t, original.GlobalScore, loaded.GlobalScore)
	require.Len(t, loaded.Features, 2)
	for i, r := range loaded.Features {
		assert.Equal(t, original.Features[i].FeatureID, r.FeatureID)
		assert.Equal(t, original.Features[i].Success, r.Success)
	}
	assert.Equal(t, original.TaskBoard, loaded.TaskBoard)
}
