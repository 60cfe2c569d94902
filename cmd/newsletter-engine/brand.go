package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Manage brand profiles",
}

var brandImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import or update a brand profile from a YAML file",
	Long: `Import reads a brand profile (id, name, category, tone, voice, settings)
from a YAML file and upserts it into the database. Missing settings fields
receive documented defaults when the brand is read back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		brand, err := s.ImportBrand(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("imported brand %s (%s)\n", brand.ID, brand.Name)
		return nil
	},
}

var brandListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured brands",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		brands, err := s.ListBrands(cmd.Context())
		if err != nil {
			return err
		}
		if len(brands) == 0 {
			fmt.Println("no brands configured")
			return nil
		}
		for _, b := range brands {
			fmt.Printf("%-24s %-32s %s\n", b.ID, b.Name, b.Category)
		}
		return nil
	},
}

func init() {
	brandCmd.AddCommand(brandImportCmd)
	brandCmd.AddCommand(brandListCmd)
	rootCmd.AddCommand(brandCmd)
}
