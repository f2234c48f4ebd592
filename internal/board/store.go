package board

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/swarm/internal/errors"
	"github.com/felixgeelhaar/swarm/internal/spec"
)

const (
	swarmDir  = ".swarm"
	boardFile = "taskboard.json"
)

// BoardPath returns the on-disk location of a project's task board
func BoardPath(projectPath string) string {
	return filepath.Join(projectPath, swarmDir, boardFile)
}

// CreateBoard builds a fresh board from the spec and persists it
func CreateBoard(projectPath string, s *spec.ProjectSpec) (Board, error) {
	b := New(s)
	if err := SaveBoard(projectPath, b); err != nil {
		return Board{}, err
	}
	return b, nil
}

// LoadBoard reads a persisted board from disk
func LoadBoard(projectPath string) (Board, error) {
	path := BoardPath(projectPath)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Board{}, errors.NewBoardNotFoundError(projectPath)
		}
		return Board{}, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("read task board: %s", path), err)
	}

	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return Board{}, errors.Wrap(errors.ErrCodeBoardInvalid, fmt.Sprintf("parse task board: %s", path), err)
	}

	return b, nil
}

// SaveBoard persists the board, replacing any previous snapshot
func SaveBoard(projectPath string, b Board) error {
	path := BoardPath(projectPath)

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "create task board directory", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal task board", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("write task board: %s", path), err)
	}

	return nil
}
