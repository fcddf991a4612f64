package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every title in the arcade with its controls.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	keyLen, titleLen := 2, 5 // "ID", "Title"
	for _, g := range games {
		keyLen = max(keyLen, len(g.Key))
		titleLen = max(titleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", keyLen, "ID", titleLen, "Title", "Controls")
	fmt.Printf("  %-*s  %-*s  %s\n", keyLen, "--", titleLen, "-----", "--------")
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", keyLen, g.Key, titleLen, g.Title, g.Help)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
