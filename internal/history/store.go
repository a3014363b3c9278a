// Package history implements the append-only calculation log: one JSON file
// per tool module under a data directory. Appends are serialized so
// concurrent calculations cannot corrupt a log file.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry is one logged calculation: the inputs as submitted and the summary
// fields of the result.
type Entry struct {
	ID        string                 `json:"id"`
	Module    string                 `json:"module"`
	Inputs    map[string]interface{} `json:"inputs"`
	Result    map[string]interface{} `json:"result"`
	Timestamp time.Time              `json:"timestamp"`
}

// Summary is the rollup surfaced in the history panel.
type Summary struct {
	TotalCalculations int        `json:"totalCalculations"`
	LastCalculation   *time.Time `json:"lastCalculation,omitempty"`
	MostCommonResult  string     `json:"mostCommonResult,omitempty"`
}

// Store reads and writes per-module history files.
type Store struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewStore creates the data directory if needed and returns a store over it.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger, now: time.Now}, nil
}

func (s *Store) pathFor(module string) (string, error) {
	if module == "" || strings.ContainsAny(module, `/\.`) {
		return "", fmt.Errorf("invalid module name %q", module)
	}
	return filepath.Join(s.dir, module+"_history.json"), nil
}

// Append logs one calculation and returns the stored entry. The whole file
// is rewritten under the store lock; history files stay small enough that
// this is not worth optimizing.
func (s *Store) Append(module string, inputs, result map[string]interface{}) (Entry, error) {
	path, err := s.pathFor(module)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Module:    module,
		Inputs:    inputs,
		Result:    result,
		Timestamp: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readFile(path)
	if err != nil {
		return Entry{}, err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return Entry{}, fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Entry{}, fmt.Errorf("failed to write history: %w", err)
	}

	s.logger.Debug("appended history entry",
		zap.String("op", "history.Append"),
		zap.String("module", module),
		zap.String("id", entry.ID),
	)
	return entry, nil
}

// LoadAll returns every entry for a module in append order. A missing file
// is an empty history, not an error.
func (s *Store) LoadAll(module string) ([]Entry, error) {
	path, err := s.pathFor(module)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readFile(path)
}

// Recent returns the newest limit entries, newest first.
func (s *Store) Recent(module string, limit int) ([]Entry, error) {
	entries, err := s.LoadAll(module)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Summarize tallies a module's history: total count, last calculation time,
// and the most common value of the designated result field.
func (s *Store) Summarize(module, resultField string) (Summary, error) {
	entries, err := s.LoadAll(module)
	if err != nil {
		return Summary{}, err
	}
	if len(entries) == 0 {
		return Summary{}, nil
	}

	summary := Summary{TotalCalculations: len(entries)}

	last := entries[0].Timestamp
	for _, entry := range entries[1:] {
		if entry.Timestamp.After(last) {
			last = entry.Timestamp
		}
	}
	summary.LastCalculation = &last

	if resultField != "" {
		tally := make(map[string]int)
		for _, entry := range entries {
			value, ok := entry.Result[resultField]
			if !ok {
				continue
			}
			tally[fmt.Sprintf("%v", value)]++
		}
		best := 0
		for value, count := range tally {
			if count > best || (count == best && value < summary.MostCommonResult) {
				best = count
				summary.MostCommonResult = value
			}
		}
	}

	return summary, nil
}

// Clear removes a module's history file.
func (s *Store) Clear(module string) error {
	path, err := s.pathFor(module)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *Store) readFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}
