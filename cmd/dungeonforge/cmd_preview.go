package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/HexSleeves/dungeon-forge/internal/ui"
)

func runPreview(cmd *cobra.Command, args []string) {
	gen, err := loadGenerator()
	if err != nil {
		log.Fatalf("Error loading generator: %v", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Error initializing terminal: %v", err)
	}

	previewer := ui.NewPreviewer(screen, gen, parseParams(paramFlags), seed)
	if err := previewer.Run(cmd.Context()); err != nil {
		log.Fatalf("Preview error: %v", err)
	}
}
