package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilecrush/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long:  `Shows every registered variant with its title and description.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	idW, titleW := runewidth.StringWidth("ID"), runewidth.StringWidth("Title")
	for _, g := range games {
		idW = max(idW, runewidth.StringWidth(g.ID))
		titleW = max(titleW, runewidth.StringWidth(g.Title))
	}

	fmt.Printf("  %s  %s  %s\n", runewidth.FillRight("ID", idW), runewidth.FillRight("Title", titleW), "Description")
	fmt.Printf("  %s  %s  %s\n", runewidth.FillRight("--", idW), runewidth.FillRight("-----", titleW), "-----------")
	for _, g := range games {
		fmt.Printf("  %s  %s  %s\n", runewidth.FillRight(g.ID, idW), runewidth.FillRight(g.Title, titleW), g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'tilecrush play <id>' to play a variant.")
}
