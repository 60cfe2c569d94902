package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/newsletter-engine/internal/pipeline"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Fact-check and quality-score a generated issue",
	Long: `Verify runs the fact checker and quality scorer against a persisted
issue's rendered HTML and prints both reports as JSON. The issue itself is
never modified; verification is advisory.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("issue", "", "issue ID to verify (required)")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	issueID, _ := cmd.Flags().GetString("issue")
	if issueID == "" {
		return fmt.Errorf("--issue is required")
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

	orch := pipeline.New(pipeline.Deps{Store: s, Generator: gw, Verify: verifyConfig(), Log: log})

	report, err := orch.Verify(cmd.Context(), issueID)
	if err != nil {
		return err
	}
	return printReport(report)
}
