package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/HexSleeves/dungeon-forge/internal/sim"
)

func runSimulate(cmd *cobra.Command, args []string) {
	gen, err := loadGenerator()
	if err != nil {
		log.Fatalf("Error loading generator: %v", err)
	}

	cfg := sim.Config{
		RunCount:   runCount,
		Parameters: parseParams(paramFlags),
	}
	if gen != nil {
		cfg.GeneratorID = gen.ID
	}
	if cmd.Flags().Changed("seed-start") {
		start := seedStart
		cfg.SeedStart = &start
	}

	results := sim.Run(cmd.Context(), gen, cfg)

	content, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("Error serializing results: %v", err)
	}
	fmt.Println(string(content))
}
