// Package knowledge maintains the cross-run log of learned patterns.
// Entries are appended as JSON lines under <projectPath>/.swarm/knowledge.jsonl
// and survive across runs; nothing ever rewrites or deletes them.
package knowledge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	swarmDir      = ".swarm"
	knowledgeFile = "knowledge.jsonl"
)

// Pattern classifies what kind of lesson an entry records.
type Pattern string

const (
	// PatternSuccess records an approach that worked
	PatternSuccess Pattern = "success"

	// PatternFailure records an approach that did not work
	PatternFailure Pattern = "failure"

	// PatternGotcha records a near-miss worth remembering
	PatternGotcha Pattern = "gotcha"
)

// Entry is one learned pattern, tagged by feature, agent role, and gate.
type Entry struct {
	Timestamp   time.Time `json:"timestamp"`
	FeatureID   string    `json:"feature_id,omitempty"`
	Pattern     Pattern   `json:"pattern"`
	Description string    `json:"description"`
	AgentRole   string    `json:"agent_role,omitempty"`
	Gate        string    `json:"gate,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// Base handles knowledge persistence for one project path.
type Base struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// Open creates or appends to the knowledge base for the given project path
func Open(projectPath string) (*Base, error) {
	dir := filepath.Join(projectPath, swarmDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create knowledge directory: %w", err)
	}

	path := filepath.Join(dir, knowledgeFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open knowledge base: %w", err)
	}

	return &Base{path: path, file: file}, nil
}

// Append writes one entry as a JSON line, filling in the timestamp if unset
func (b *Base) Append(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal knowledge entry: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := fmt.Fprintf(b.file, "%s\n", data); err != nil {
		return fmt.Errorf("append knowledge entry: %w", err)
	}

	return nil
}

// Path returns the knowledge base file path
func (b *Base) Path() string {
	return b.path
}

// Close syncs and closes the underlying file
func (b *Base) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.file.Sync(); err != nil {
		return err
	}
	return b.file.Close()
}

// Read returns all knowledge entries for a project in append order
func Read(projectPath string) ([]Entry, error) {
	path := filepath.Join(projectPath, swarmDir, knowledgeFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("open knowledge base: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("parse knowledge line: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	return entries, nil
}
