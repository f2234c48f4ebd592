package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/swarm/internal/domain"
)

const validSpecYAML = `project_name: todo-api
tech_stack:
  - go
  - postgres
quality:
  min_coverage: 0.8
features:
  - id: user-auth
    name: User authentication
    description: Login and session handling
    priority: P0
    acceptance_criteria:
      - users can log in with email and password
      - invalid credentials are rejected
  - id: todo-crud
    name: Todo CRUD
    priority: P1
    dependencies:
      - user-auth
    acceptance_criteria:
      - authenticated users can create todos
`

func writeSpecFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadSpec(t *testing.T) {
	path := writeSpecFile(t, validSpecYAML)

	s, err := LoadSpec(path)
	require.NoError(t, err)

	assert.Equal(t, "todo-api", s.ProjectName)
	assert.Equal(t, 0.8, s.Quality.MinCoverage)
	require.Len(t, s.Features, 2)
	assert.Equal(t, domain.FeatureID("user-auth"), s.Features[0].ID)
	assert.Equal(t, domain.PriorityP0, s.Features[0].Priority)
	assert.Equal(t, []string{"user-auth"}, s.Features[1].Dependencies)
}

func TestLoadSpecNotFound(t *testing.T) {
	_, err := LoadSpec(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPEC-001")
}

func TestLoadSpecInvalidYAML(t *testing.T) {
	path := writeSpecFile(t, "project_name: [unclosed")
	_, err := LoadSpec(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IO-005")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ProjectSpec
		wantErr string
	}{
		{
			name: "valid with zero features",
			spec: ProjectSpec{ProjectName: "empty"},
		},
		{
			name:    "missing project name",
			spec:    ProjectSpec{},
			wantErr: "project_name",
		},
		{
			name: "invalid feature id",
			spec: ProjectSpec{
				ProjectName: "p",
				Features: []Feature{
					{ID: "Bad_ID", Name: "x", AcceptanceCriteria: []string{"c"}},
				},
			},
			wantErr: "feature 0",
		},
		{
			name: "duplicate feature id",
			spec: ProjectSpec{
				ProjectName: "p",
				Features: []Feature{
					{ID: "auth", Name: "a", AcceptanceCriteria: []string{"c"}},
					{ID: "auth", Name: "b", AcceptanceCriteria: []string{"c"}},
				},
			},
			wantErr: "duplicate",
		},
		{
			name: "missing acceptance criteria",
			spec: ProjectSpec{
				ProjectName: "p",
				Features: []Feature{
					{ID: "auth", Name: "a"},
				},
			},
			wantErr: "acceptance criteria",
		},
		{
			name: "unknown dependency tolerated",
			spec: ProjectSpec{
				ProjectName: "p",
				Features: []Feature{
					{ID: "auth", Name: "a", Dependencies: []string{"ghost"}, AcceptanceCriteria: []string{"c"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.spec)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "spec.yaml")
	repo := NewFileSpecRepository()

	original := &ProjectSpec{
		ProjectName: "roundtrip",
		Quality:     QualityConfig{MinCoverage: 0.75},
		Features: []Feature{
			{ID: "core", Name: "Core", AcceptanceCriteria: []string{"works"}},
		},
	}

	require.NoError(t, repo.Save(original, path))

	loaded, err := repo.Load(path)
	require.NoError(t, err)
	assert.Equal(t, original.ProjectName, loaded.ProjectName)
	assert.Equal(t, original.Quality.MinCoverage, loaded.Quality.MinCoverage)
	require.Len(t, loaded.Features, 1)
	assert.Equal(t, original.Features[0].ID, loaded.Features[0].ID)
}
