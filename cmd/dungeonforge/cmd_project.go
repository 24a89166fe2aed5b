package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HexSleeves/dungeon-forge/internal/project"
)

func runProjectNew(cmd *cobra.Command, args []string) {
	name := args[0]
	p := project.New(name)

	filename := strings.ReplaceAll(strings.ToLower(name), " ", "_") + ".dungeonforge.json"
	path := filepath.Join(projectDir, filename)
	if err := p.Save(path); err != nil {
		log.Fatalf("Error saving project: %v", err)
	}

	store, err := project.NewRecentStore("")
	if err == nil {
		if err := store.Record(p, path); err != nil {
			log.Printf("Note: could not update recent projects: %v", err)
		}
	}

	fmt.Printf("Created project %q at %s\n", name, path)
}

func runProjectRecent(cmd *cobra.Command, args []string) {
	store, err := project.NewRecentStore("")
	if err != nil {
		log.Fatalf("Error opening recent-projects store: %v", err)
	}

	entries, err := store.List()
	if err != nil {
		log.Fatalf("Error reading recent projects: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No recent projects")
		return
	}

	for _, e := range entries {
		fmt.Printf("%s\t%s\t%s\n", e.LastOpened, e.Name, e.Path)
	}
}
