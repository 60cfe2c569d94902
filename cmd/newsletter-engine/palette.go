package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/newsletter-engine/internal/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette [category]",
	Short: "Generate a brand color palette for a category",
	Long: `Palette generates a five-color newsletter palette appropriate for a brand
category (technology, finance, health, ...). Unknown categories fall back to
a general hue range. The same --seed always yields the same palette.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().Int64("seed", 0, "random seed (default: time-based)")

	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gen := palette.NewGenerator(rand.New(rand.NewSource(seed)))
	pal := gen.Generate(category)

	fmt.Printf("primary:    %s\n", pal.Primary)
	fmt.Printf("secondary:  %s\n", pal.Secondary)
	fmt.Printf("accent:     %s\n", pal.Accent)
	fmt.Printf("text:       %s\n", pal.Text)
	fmt.Printf("background: %s\n", pal.Background)
	return nil
}
