package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storer is a keyed collection of validated records.
type Storer[T ValidatingSpec] interface {
	Save(string, T) error
	Get(string) T
	GetAll() map[string]T
}

// FileStore keeps every record of a directory in memory and writes each
// saved record back as <id>.json. It is safe for concurrent use.
type FileStore[T ValidatingSpec] struct {
	path    string
	records map[string]T
	invalid map[string]error

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](path string) (*FileStore[T], error) {
	s := &FileStore[T]{
		path:    path,
		records: map[string]T{},
		invalid: map[string]error{},
	}

	err := s.Reload()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Reload replaces the cached records with the directory's current contents.
// A file that cannot be loaded or validated is skipped and reported by
// Invalid under its file name without the extension. Only a failure to read
// the directory itself is returned.
func (s *FileStore[T]) Reload() error {
	records := map[string]T{}
	invalid := map[string]error{}

	err := filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		base := filepath.Base(path)
		stem := strings.TrimSuffix(base, ".json")

		asset, err := s.loadAsset(path)
		if err != nil {
			invalid[stem] = fmt.Errorf("loading %s: %w", base, err)
			return nil
		}

		err = asset.Validate()
		if err != nil {
			invalid[stem] = fmt.Errorf("validating %s: %w", base, err)
			return nil
		}

		if _, ok := records[asset.Id().String()]; ok {
			invalid[stem] = fmt.Errorf("loading %s: duplicate key detected: %s", base, asset.Id())
			return nil
		}
		records[asset.Id().String()] = asset.Spec

		return nil
	})
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.records = records
	s.invalid = invalid
	s.mu.Unlock()

	return nil
}

// Invalid returns the files skipped by the last Reload, keyed by file name
// without the extension.
func (s *FileStore[T]) Invalid() map[string]error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]error, len(s.invalid))
	for id, err := range s.invalid {
		vals[id] = err
	}

	return vals
}

func (s *FileStore[T]) Save(id string, o T) error {
	asset := &Asset[T]{
		Version:    CurrentVersion,
		Identifier: Identifier(id),
		Spec:       o,
	}
	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	jsonData, err := json.MarshalIndent(asset, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := WriteFileAtomic(s.filePath(id), jsonData, 0644); err != nil {
		return err
	}
	s.records[id] = o

	return nil
}

// WriteFileAtomic writes data to a temp file then renames it to path so
// readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Get returns the record for id, or the zero value if there is none.
func (s *FileStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

// Has reports whether a record exists for id.
func (s *FileStore[T]) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[id]
	return ok
}

func (s *FileStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}

	return vals
}

func (s *FileStore[T]) filePath(id string) string {
	return filepath.Join(s.path, fmt.Sprintf("%s.json", id))
}

func (s *FileStore[T]) loadAsset(path string) (*Asset[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	jsonData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	err = json.Unmarshal(jsonData, asset)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}
