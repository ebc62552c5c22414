package feeder

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
)

const (
	// DefaultBaseDir is where the load-test service keeps its fixture files.
	DefaultBaseDir = "/usr/local/bluebutton-jmeter-service"
	// DefaultFileName is the identifier list used when no prefix is given.
	DefaultFileName = "bene-ids.csv"
)

// BeneIDs hands out beneficiary identifiers in file order, starting over
// from the first identifier once the list is exhausted.
// It is safe for concurrent access.
type BeneIDs struct {
	path   string
	ids    []string
	cursor atomic.Uint64
}

var _ Feeder = (*BeneIDs)(nil)

// Option customizes how NewBeneIDs resolves its backing file.
type Option func(*options)

type options struct {
	baseDir string
}

// WithBaseDir overrides DefaultBaseDir.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		if strings.TrimSpace(dir) != "" {
			o.baseDir = dir
		}
	}
}

// PathForPrefix returns <baseDir>/bene-ids.csv for an empty prefix and
// <baseDir>/<prefix>-bene-ids.csv otherwise.
func PathForPrefix(baseDir, prefix string) string {
	name := DefaultFileName
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		name = prefix + "-" + DefaultFileName
	}
	return filepath.Join(baseDir, name)
}

// NewBeneIDs loads the identifier list selected by prefix.
func NewBeneIDs(prefix string, opts ...Option) (*BeneIDs, error) {
	o := options{baseDir: DefaultBaseDir}
	for _, opt := range opts {
		opt(&o)
	}
	return NewBeneIDsFromPath(PathForPrefix(o.baseDir, prefix))
}

// NewBeneIDsFromPath loads the identifier list stored at path. The format is
// picked from the extension: .json, .yaml and .yml are decoded as lists,
// anything else is read as CSV.
//
// Every failure, including a file with no identifiers, wraps ErrSourceUnavailable.
func NewBeneIDsFromPath(path string) (*BeneIDs, error) {
	ids, err := loadIDs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s: no identifiers", ErrSourceUnavailable, path)
	}
	return &BeneIDs{path: path, ids: ids}, nil
}

// NewBeneIDsFromList builds a supply over a copy of ids.
func NewBeneIDsFromList(ids []string) (*BeneIDs, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySupply
	}
	return &BeneIDs{ids: append([]string(nil), ids...)}, nil
}

func loadIDs(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSONIDs(path)
	case ".yaml", ".yml":
		return loadYAMLIDs(path)
	default:
		return loadCSVIDs(path)
	}
}

// NextID returns the identifier at the current position and advances it.
// The position is claimed with a single atomic add, so concurrent callers
// never observe the same slot and never index past the end.
func (s *BeneIDs) NextID() (string, error) {
	n := uint64(len(s.ids))
	if n == 0 {
		return "", ErrEmptySupply
	}
	slot := s.cursor.Add(1) - 1
	return s.ids[slot%n], nil
}

// Fork returns a supply that shares this supply's identifier list but keeps
// its own position, starting at the first identifier.
func (s *BeneIDs) Fork() *BeneIDs {
	return &BeneIDs{path: s.path, ids: s.ids}
}

// Path returns the file the identifiers were loaded from, or "" for list-backed supplies.
func (s *BeneIDs) Path() string {
	return s.path
}

// Close releases resources. The list lives in memory, so this is a no-op.
func (s *BeneIDs) Close() error {
	return nil
}

// Len returns the total number of identifiers in the dataset.
func (s *BeneIDs) Len() int {
	return len(s.ids)
}
