package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	seed       uint64
	graphPath  string
	exampleID  string
	paramFlags []string
	outPath    string

	runCount  int
	seedStart uint64

	servePort int

	projectDir string

	rootCmd = &cobra.Command{
		Use:   "dungeonforge",
		Short: "A cli for graph-driven procedural dungeon generation",
		Long: `Dungeonforge interprets node-graph generator documents into dungeon
layouts, runs batch simulations over them, and previews the results
in the terminal.`,
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a single dungeon layout and print it as JSON",
		Run:   runGenerate, // Defined in cmd_generate.go
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Run a batch of generations and report distribution statistics",
		Run:   runSimulate, // Defined in cmd_simulate.go
	}

	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Render generated layouts in the terminal, stepping through seeds",
		Run:   runPreview, // Defined in cmd_preview.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation and simulation pipelines over HTTP",
		Run:   runServe, // Defined in cmd_serve.go
	}

	examplesCmd = &cobra.Command{
		Use:   "examples",
		Short: "List the embedded example generators",
		Run:   runExamples, // Defined in cmd_generate.go
	}

	// --- Project Management ---
	projectCmd = &cobra.Command{
		Use:   "project",
		Short: "Manage project documents",
	}
	projectNewCmd = &cobra.Command{
		Use:   "new [name]",
		Short: "Create an empty project document",
		Args:  cobra.ExactArgs(1),
		Run:   runProjectNew, // Defined in cmd_project.go
	}
	projectRecentCmd = &cobra.Command{
		Use:   "recent",
		Short: "List recently opened projects",
		Run:   runProjectRecent, // Defined in cmd_project.go
	}
)

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, simulateCmd, previewCmd} {
		cmd.Flags().StringVar(&graphPath, "graph", "", "Path to a generator document to interpret")
		cmd.Flags().StringVar(&exampleID, "example", "", "Name of an embedded example generator")
		cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "Generation parameter override as key=value (repeatable)")
	}

	generateCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the random stream")
	generateCmd.Flags().StringVar(&outPath, "out", "", "Write the result to this file instead of stdout")

	previewCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the first layout shown")

	simulateCmd.Flags().IntVar(&runCount, "runs", 100, "Number of generations in the batch")
	simulateCmd.Flags().Uint64Var(&seedStart, "seed-start", 0, "First seed; run i uses seed-start+i")

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")

	projectNewCmd.Flags().StringVar(&projectDir, "dir", ".", "Directory to write the project file into")

	projectCmd.AddCommand(projectNewCmd, projectRecentCmd)
	rootCmd.AddCommand(generateCmd, simulateCmd, previewCmd, serveCmd, examplesCmd, projectCmd)
}
