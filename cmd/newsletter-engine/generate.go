package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/newsletter-engine/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a newsletter draft for a brand",
	Long: `Generate runs the full pipeline for one brand: research, writing, layout,
and design, in that order. The run is recorded as an issue that ends in DRAFT
on success or FAILED otherwise. With --verify, fact checking and quality
scoring run against the finished draft and print their reports.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("brand", "", "brand ID to generate for (required)")
	generateCmd.Flags().Bool("verify", false, "run fact check and quality scoring after generation")
	generateCmd.Flags().String("output", "", "also write the rendered HTML to a file")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	brandID, _ := cmd.Flags().GetString("brand")
	if brandID == "" {
		return fmt.Errorf("--brand is required")
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	gw, err := newGateway(log)
	if err != nil {
		return err
	}

	orch := pipeline.New(pipeline.Deps{
		Store:     s,
		Generator: gw,
		Verify:    verifyConfig(),
		Log:       log,
		Progress:  os.Stderr,
	})

	issue, err := orch.Run(cmd.Context(), brandID)
	if err != nil {
		if issue.ID != "" {
			fmt.Fprintf(os.Stderr, "run %s failed\n", issue.ID)
		}
		return err
	}

	fmt.Printf("issue %s: %s\n", issue.ID, issue.Status)
	fmt.Printf("subject: %s\n", issue.Subject)

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := os.WriteFile(output, []byte(issue.HTMLContent), 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Printf("wrote %s\n", output)
	}

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		report, err := orch.Verify(cmd.Context(), issue.ID)
		if err != nil {
			return err
		}
		return printReport(report)
	}
	return nil
}

func printReport(report pipeline.VerificationReport) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
