package project

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// maxRecentProjects caps the recent-projects list.
const maxRecentProjects = 10

// RecentProject is one entry in the recently-opened list.
type RecentProject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	LastOpened string `json:"last_opened"`
}

// RecentStore persists the recent-projects list as JSON in a config
// directory, most recent first.
type RecentStore struct {
	path string
}

// NewRecentStore creates a store rooted at dir. An empty dir defaults to
// ~/.dungeonforge.
func NewRecentStore(dir string) (*RecentStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".dungeonforge")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &RecentStore{path: filepath.Join(dir, "recent.json")}, nil
}

// List returns the recorded entries, most recent first. A missing file
// yields an empty list.
func (s *RecentStore) List() ([]RecentProject, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []RecentProject{}, nil
		}
		return nil, err
	}

	var entries []RecentProject
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Record moves the given project to the front of the list, dropping any
// previous entry for the same path and trimming the list to its cap.
func (s *RecentStore) Record(p *Project, path string) error {
	entries, err := s.List()
	if err != nil {
		return err
	}

	updated := []RecentProject{{
		ID:         p.ID,
		Name:       p.Name,
		Path:       path,
		LastOpened: time.Now().UTC().Format(time.RFC3339),
	}}
	for _, e := range entries {
		if e.Path == path {
			continue
		}
		updated = append(updated, e)
		if len(updated) == maxRecentProjects {
			break
		}
	}

	content, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, content, 0o644)
}
