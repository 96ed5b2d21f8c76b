package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacker/internal/registry"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List all available puzzle engines",
	Long:  `Shows a list of all puzzle engines registered in stacker.`,
	Run:   runEngines,
}

func runEngines(cmd *cobra.Command, args []string) {
	engines := registry.List()

	if len(engines) == 0 {
		fmt.Println("No engines available.")
		return
	}

	fmt.Println("Available engines:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, e := range engines {
		if len(e.Name) > maxNameLen {
			maxNameLen = len(e.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, e := range engines {
		marker := ""
		if e.Name == appConfig.Session.Engine {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxNameLen, e.Name, e.Description, marker)
	}

	fmt.Println()
	fmt.Println("Run 'stacker play <name>' to play.")
}
