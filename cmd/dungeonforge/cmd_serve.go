package main

import (
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HexSleeves/dungeon-forge/internal/server"
)

func runServe(cmd *cobra.Command, args []string) {
	s := server.New(server.Config{Port: servePort}, slog.Default())
	if err := s.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
