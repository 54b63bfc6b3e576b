// Package applist reads and writes the fixed-name JSON lists of application
// executables snipd treats specially: the sensitive-application list and the
// emoji-exclusion list.
package applist

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Store persists one application list as a JSON array of executable names.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store for the list file at path.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load returns the list, or an empty list when the file does not exist yet.
func (s *Store) Load() ([]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read application list %s: %w", s.path, err)
	}

	var apps []string
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("failed to parse application list %s: %w", s.path, err)
	}
	return apps, nil
}

// Save writes the list, replacing the file contents.
func (s *Store) Save(apps []string) error {
	data, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal application list: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write application list %s: %w", s.path, err)
	}
	return nil
}

// Add appends name to the list. The comparison is case-insensitive; adding
// an existing entry reports false and leaves the file untouched.
func (s *Store) Add(name string) (bool, error) {
	apps, err := s.Load()
	if err != nil {
		return false, err
	}
	if containsFold(apps, name) {
		return false, nil
	}

	apps = append(apps, name)
	slices.Sort(apps)
	if err := s.Save(apps); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes name from the list, reporting whether it was present.
func (s *Store) Remove(name string) (bool, error) {
	apps, err := s.Load()
	if err != nil {
		return false, err
	}

	kept := apps[:0]
	for _, app := range apps {
		if !strings.EqualFold(app, name) {
			kept = append(kept, app)
		}
	}
	if len(kept) == len(apps) {
		return false, nil
	}

	if err := s.Save(kept); err != nil {
		return false, err
	}
	return true, nil
}

func containsFold(apps []string, name string) bool {
	for _, app := range apps {
		if strings.EqualFold(app, name) {
			return true
		}
	}
	return false
}
