// Package eventlog provides the append-only audit trail for a swarm run.
// Events are written as one JSON line per append under
// <projectPath>/.swarm/events.jsonl.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	swarmDir  = ".swarm"
	eventFile = "events.jsonl"
)

// Log handles event persistence for one run. A single writer is assumed;
// the mutex only protects the in-process fan-out during reviews.
type Log struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// Open creates or appends to the event log for the given project path
func Open(projectPath string) (*Log, error) {
	dir := filepath.Join(projectPath, swarmDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create event log directory: %w", err)
	}

	path := filepath.Join(dir, eventFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}

	return &Log{path: path, file: file}, nil
}

// Append writes one event as a JSON line. Missing ids and timestamps are
// filled in. Append never rewrites earlier lines.
func (l *Log) Append(event Event) error {
	if event.ID == "" {
		filled := NewEvent(event.Action)
		filled.AgentRole = event.AgentRole
		filled.AgentTurn = event.AgentTurn
		filled.Input = event.Input
		filled.Output = event.Output
		filled.DurationMs = event.DurationMs
		event = filled
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := fmt.Fprintf(l.file, "%s\n", data); err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	return nil
}

// Path returns the event log file path
func (l *Log) Path() string {
	return l.path
}

// Close syncs and closes the underlying file
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Sync(); err != nil {
		return err
	}
	return l.file.Close()
}

// Read returns all events for a project in append order
func Read(projectPath string) ([]Event, error) {
	path := filepath.Join(projectPath, swarmDir, eventFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Event{}, nil
		}
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse event line: %w", err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}

	return events, nil
}
