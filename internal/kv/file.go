package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store with a single JSON file on disk holding
// all keys. Writes replace the file atomically via a temp file and
// rename, so a crash mid-write never leaves a half-written store.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore persisting into the given path. The
// parent directory must exist; the file itself is created on first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path cannot be empty")
	}

	return &FileStore{path: path}, nil
}

// Load returns the value stored under key.
func (s *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load value: %w", ctx.Err())
	default:
	}

	if key == "" {
		return nil, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return nil, err
	}

	value, exists := values[key]
	if !exists {
		return nil, ErrKeyNotFound
	}

	return value, nil
}

// Save replaces the value stored under key.
func (s *FileStore) Save(ctx context.Context, key string, value []byte) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("save value: %w", ctx.Err())
	default:
	}

	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		// A corrupt store file must not wedge writes forever: start
		// from an empty map so the next successful Save heals it.
		values = make(map[string][]byte)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	values[key] = stored

	return s.write(values)
}

// Delete removes the key and its value.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete value: %w", ctx.Err())
	default:
	}

	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}

	if _, exists := values[key]; !exists {
		return nil
	}

	delete(values, key)

	return s.write(values)
}

// Close is a no-op for the file store; every operation opens and closes
// the backing file itself.
func (s *FileStore) Close() error {
	return nil
}

// read loads the full key map from disk. An absent file is an empty
// store.
func (s *FileStore) read() (map[string][]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string][]byte), nil
		}
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	values := make(map[string][]byte)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing store file: %w", err)
	}

	return values, nil
}

// write replaces the store file atomically.
func (s *FileStore) write(values map[string][]byte) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store file: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing temp store file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing temp store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing store file: %w", err)
	}

	return nil
}
