package data

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/HexSleeves/dungeon-forge/internal/graph"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad reads and unmarshals a JSON file, panicking on error.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// ExampleGenerator loads one of the embedded example generators by name.
// The name may omit the .json extension.
func ExampleGenerator(name string) (*graph.Generator, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	content, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unknown example generator %s: %w", name, err)
	}
	return graph.ParseGenerator(content)
}

// ListExamples returns the names of all embedded example generators, sorted,
// without the .json extension.
func ListExamples() []string {
	entries, err := dataFS.ReadDir(".")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
