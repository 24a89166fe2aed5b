// Package project implements the project document: a named collection of
// generator definitions with JSON persistence and a recent-projects list.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/HexSleeves/dungeon-forge/internal/graph"
)

// Project is the top-level document the editor saves and opens.
type Project struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Created      string            `json:"created"`
	Modified     string            `json:"modified"`
	Generators   []graph.Generator `json:"generators"`
	SharedAssets []Asset           `json:"shared_assets"`
	ExportConfig ExportConfig      `json:"export_config"`
}

// Asset is an opaque shared resource referenced by generators.
type Asset struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ExportConfig controls how generated output is exported.
type ExportConfig struct {
	DefaultTarget  string `json:"default_target"`
	OutputDir      string `json:"output_dir"`
	IncludeRuntime bool   `json:"include_runtime"`
}

// DefaultExportConfig returns the export settings new projects start with.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		DefaultTarget:  "typescript",
		OutputDir:      "./generated",
		IncludeRuntime: true,
	}
}

// New creates an empty project with a fresh id and timestamps.
func New(name string) *Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Project{
		ID:           uuid.NewString(),
		Name:         name,
		Version:      "1.0.0",
		Created:      now,
		Modified:     now,
		Generators:   []graph.Generator{},
		SharedAssets: []Asset{},
		ExportConfig: DefaultExportConfig(),
	}
}

// Open reads and parses a project document from disk.
func Open(path string) (*Project, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var p Project
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	return &p, nil
}

// Save writes the project to disk as indented JSON, bumping its modified
// timestamp.
func (p *Project) Save(path string) error {
	p.Modified = time.Now().UTC().Format(time.RFC3339)

	content, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize project: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// GeneratorByID returns the generator with the given id, or nil.
func (p *Project) GeneratorByID(id string) *graph.Generator {
	for i := range p.Generators {
		if p.Generators[i].ID == id {
			return &p.Generators[i]
		}
	}
	return nil
}
