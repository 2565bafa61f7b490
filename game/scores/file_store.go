package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// errMalformed marks a score file that is not a JSON object of strings
var errMalformed = errors.New("malformed score file")

// FileStore implements Store using a single JSON file of string values
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store. The parent directory is created
// if needed; the file itself is written on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create score directory: %w", err)
		}
	}

	return &FileStore{path: path}, nil
}

// Path returns the backing file path
func (fs *FileStore) Path() string {
	return fs.path
}

// Get returns the value stored under key
func (fs *FileStore) Get(key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key, rewriting the file. A malformed file is moved
// aside to <path>.corrupt and replaced.
func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.read()
	if errors.Is(err, errMalformed) {
		aside := fs.path + ".corrupt"
		if renameErr := os.Rename(fs.path, aside); renameErr != nil {
			return fmt.Errorf("failed to move malformed score file aside: %w", renameErr)
		}
		log.Printf("Warning: %v; moved to %s", err, aside)
		values, err = make(map[string]string), nil
	}
	if err != nil {
		return err
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	// Write through a temp file so a crash never leaves a half-written file
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write score file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace score file: %w", err)
	}

	return nil
}

// read loads the file; a missing file is an empty store
func (fs *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read score file: %w", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w %s: %v", errMalformed, fs.path, err)
	}
	return values, nil
}
