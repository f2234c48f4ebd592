package spec

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/swarm/internal/domain"
)

func sampleSpec() *ProjectSpec {
	return &ProjectSpec{
		ProjectName: "todo-api",
		TechStack:   []string{"go"},
		Quality:     QualityConfig{MinCoverage: 0.8},
		Features: []Feature{
			{
				ID:                 "user-auth",
				Name:               "User authentication",
				Priority:           domain.PriorityP0,
				AcceptanceCriteria: []string{"users can log in"},
			},
			{
				ID:                 "todo-crud",
				Name:               "Todo CRUD",
				Dependencies:       []string{"user-auth"},
				AcceptanceCriteria: []string{"todos can be created"},
			},
		},
	}
}

func TestGenerateSummary(t *testing.T) {
	summary, err := GenerateSummary(sampleSpec())
	require.NoError(t, err)

	assert.Equal(t, "todo-api", summary.ProjectName)
	require.Len(t, summary.Features, 2)

	auth := summary.Features["user-auth"]
	assert.NotEmpty(t, auth.Hash)
	assert.Equal(t, "User authentication", auth.Name)
	assert.Equal(t, 1, auth.Criteria)

	crud := summary.Features["todo-crud"]
	assert.Equal(t, []string{"user-auth"}, crud.Dependencies)
}

func TestHashDeterministic(t *testing.T) {
	s := sampleSpec()

	h1, err := Hash(s.Features[0])
	require.NoError(t, err)
	h2, err := Hash(s.Features[0])
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// Different content hashes differently
	changed := s.Features[0]
	changed.Description = "changed"
	h3, err := Hash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashIgnoresDependencyOrder(t *testing.T) {
	f := Feature{
		ID:                 "multi",
		Name:               "Multi",
		Dependencies:       []string{"b", "a"},
		AcceptanceCriteria: []string{"c"},
	}

	h1, err := Hash(f)
	require.NoError(t, err)

	f.Dependencies = []string{"a", "b"}
	h2, err := Hash(f)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestSummarySaveLoad(t *testing.T) {
	summary, err := GenerateSummary(sampleSpec())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ".swarm", "spec-summary.json")
	require.NoError(t, SaveSummary(summary, path))

	loaded, err := LoadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, summary.ProjectName, loaded.ProjectName)
	assert.Equal(t, summary.Features["user-auth"].Hash, loaded.Features["user-auth"].Hash)
}
