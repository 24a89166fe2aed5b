package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HexSleeves/dungeon-forge/data"
	"github.com/HexSleeves/dungeon-forge/internal/engine"
	"github.com/HexSleeves/dungeon-forge/internal/graph"
)

func runGenerate(cmd *cobra.Command, args []string) {
	gen, err := loadGenerator()
	if err != nil {
		log.Fatalf("Error loading generator: %v", err)
	}

	req := engine.Request{
		Seed:       seed,
		Generator:  gen,
		Parameters: parseParams(paramFlags),
	}
	if gen != nil {
		req.GeneratorID = gen.ID
	}

	result := engine.Generate(cmd.Context(), req)

	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Error serializing result: %v", err)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, content, 0o644); err != nil {
			log.Fatalf("Error writing %s: %v", outPath, err)
		}
		return
	}
	fmt.Println(string(content))
}

func runExamples(cmd *cobra.Command, args []string) {
	for _, name := range data.ListExamples() {
		fmt.Println(name)
	}
}

// loadGenerator resolves the --graph / --example flags into a parsed
// generator document. Both unset means the fallback generator.
func loadGenerator() (*graph.Generator, error) {
	switch {
	case graphPath != "" && exampleID != "":
		return nil, fmt.Errorf("--graph and --example are mutually exclusive")
	case graphPath != "":
		content, err := os.ReadFile(graphPath)
		if err != nil {
			return nil, err
		}
		return graph.ParseGenerator(content)
	case exampleID != "":
		return data.ExampleGenerator(exampleID)
	default:
		return nil, nil
	}
}

// parseParams converts repeated key=value flags into a parameter map,
// preferring numeric and boolean values over strings.
func parseParams(flags []string) map[string]any {
	if len(flags) == 0 {
		return nil
	}

	params := make(map[string]any, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			log.Fatalf("Invalid --param %q, expected key=value", f)
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			params[key] = n
		} else if b, err := strconv.ParseBool(value); err == nil {
			params[key] = b
		} else {
			params[key] = value
		}
	}
	return params
}
