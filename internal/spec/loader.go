package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/swarm/internal/errors"
)

// SpecRepository defines the interface for loading and saving ProjectSpec files.
// This interface enables dependency injection and makes testing easier.
type SpecRepository interface {
	// Load reads a ProjectSpec from a file
	Load(path string) (*ProjectSpec, error)

	// Save writes a ProjectSpec to a file
	Save(spec *ProjectSpec, path string) error
}

// FileSpecRepository implements SpecRepository for file-based storage
type FileSpecRepository struct{}

// NewFileSpecRepository creates a new file-based spec repository
func NewFileSpecRepository() *FileSpecRepository {
	return &FileSpecRepository{}
}

// Load reads a ProjectSpec from a YAML file
func (r *FileSpecRepository) Load(path string) (*ProjectSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSpecNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("read spec file: %s", path), err)
	}

	var s ProjectSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "YAML", err)
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Save writes a ProjectSpec to a YAML file
func (r *FileSpecRepository) Save(spec *ProjectSpec, path string) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSpecMarshal, "marshal spec", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, fmt.Sprintf("create directory: %s", filepath.Dir(path)), err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("write spec file: %s", path), err)
	}

	return nil
}

// LoadSpec is a convenience wrapper around the file repository
func LoadSpec(path string) (*ProjectSpec, error) {
	return NewFileSpecRepository().Load(path)
}

// Validate checks a ProjectSpec for structural problems. A spec with zero
// features is valid; each declared feature must carry an id, a name, and
// at least one acceptance criterion.
func Validate(s *ProjectSpec) error {
	if s.ProjectName == "" {
		return errors.NewSpecInvalidError("missing project_name")
	}

	seen := make(map[string]bool, len(s.Features))
	for i, f := range s.Features {
		if err := f.ID.Validate(); err != nil {
			return errors.NewSpecInvalidError(fmt.Sprintf("feature %d: %v", i, err))
		}
		if seen[f.ID.String()] {
			return errors.NewSpecInvalidError(fmt.Sprintf("duplicate feature id %q", f.ID))
		}
		seen[f.ID.String()] = true

		if f.Name == "" {
			return errors.NewSpecInvalidError(fmt.Sprintf("feature %q: missing name", f.ID))
		}
		if len(f.AcceptanceCriteria) == 0 {
			return errors.NewSpecInvalidError(fmt.Sprintf("feature %q: no acceptance criteria", f.ID))
		}
		if f.Priority != "" {
			if err := f.Priority.Validate(); err != nil {
				return errors.NewSpecInvalidError(fmt.Sprintf("feature %q: %v", f.ID, err))
			}
		}
	}

	// Dependencies on unknown features are tolerated at load time; the
	// scheduler skips them silently.
	return nil
}
