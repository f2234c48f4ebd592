package spec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/zeebo/blake3"

	"github.com/felixgeelhaar/swarm/internal/domain"
)

// Summary is the spec snapshot artifact persisted at init time. Each
// feature is recorded with a content hash so later runs can detect
// whether the spec changed underneath an existing workspace.
type Summary struct {
	ProjectName string                             `json:"project_name"`
	GeneratedAt time.Time                          `json:"generated_at"`
	TechStack   []string                           `json:"tech_stack,omitempty"`
	Features    map[domain.FeatureID]FeatureDigest `json:"features"`
}

// FeatureDigest records the hashed identity of a single feature.
type FeatureDigest struct {
	Hash         string   `json:"hash"` // blake3(canonical feature JSON)
	Name         string   `json:"name"`
	Priority     string   `json:"priority,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Criteria     int      `json:"criteria"`
}

// GenerateSummary builds a Summary from a ProjectSpec
func GenerateSummary(s *ProjectSpec) (*Summary, error) {
	summary := &Summary{
		ProjectName: s.ProjectName,
		GeneratedAt: time.Now().UTC(),
		TechStack:   s.TechStack,
		Features:    make(map[domain.FeatureID]FeatureDigest, len(s.Features)),
	}

	for _, feature := range s.Features {
		hash, err := Hash(feature)
		if err != nil {
			return nil, fmt.Errorf("hash feature %s: %w", feature.ID, err)
		}

		summary.Features[feature.ID] = FeatureDigest{
			Hash:         hash,
			Name:         feature.Name,
			Priority:     feature.Priority.String(),
			Dependencies: feature.Dependencies,
			Criteria:     len(feature.AcceptanceCriteria),
		}
	}

	return summary, nil
}

// SaveSummary writes a Summary to disk
func SaveSummary(summary *Summary, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal spec summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write spec summary: %w", err)
	}

	return nil
}

// LoadSummary reads a Summary from disk
func LoadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec summary: %w", err)
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("unmarshal spec summary: %w", err)
	}

	return &summary, nil
}

// Canonicalize returns a canonical JSON representation of a feature
// with stable ordering for consistent hashing
func Canonicalize(feature Feature) ([]byte, error) {
	data := map[string]interface{}{
		"id":          feature.ID.String(),
		"name":        feature.Name,
		"description": feature.Description,
		"priority":    feature.Priority.String(),
		"criteria":    feature.AcceptanceCriteria,
	}

	if len(feature.Dependencies) > 0 {
		deps := make([]string, len(feature.Dependencies))
		copy(deps, feature.Dependencies)
		sort.Strings(deps)
		data["dependencies"] = deps
	}

	// encoding/json marshals map keys in sorted order
	return json.Marshal(data)
}

// Hash computes the blake3 hash of a canonicalized feature
func Hash(feature Feature) (string, error) {
	canonical, err := Canonicalize(feature)
	if err != nil {
		return "", fmt.Errorf("canonicalize feature: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash feature: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
