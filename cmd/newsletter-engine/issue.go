package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Inspect generated newsletter issues",
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues, optionally filtered by brand",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		brandID, _ := cmd.Flags().GetString("brand")
		issues, err := s.ListIssues(cmd.Context(), brandID)
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			fmt.Println("no issues found")
			return nil
		}
		for _, issue := range issues {
			fmt.Printf("%-36s %-16s %-10s %s\n",
				issue.ID, issue.BrandID, issue.Status, issue.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var issueShowCmd = &cobra.Command{
	Use:   "show <issue-id>",
	Short: "Show one issue's subject, status, and HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		issue, err := s.GetIssue(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("issue:     %s\n", issue.ID)
		fmt.Printf("brand:     %s\n", issue.BrandID)
		fmt.Printf("status:    %s\n", issue.Status)
		fmt.Printf("subject:   %s\n", issue.Subject)
		fmt.Printf("preheader: %s\n", issue.Preheader)

		if output, _ := cmd.Flags().GetString("output"); output != "" {
			if err := os.WriteFile(output, []byte(issue.HTMLContent), 0o644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
			fmt.Printf("wrote %s\n", output)
		}
		return nil
	},
}

func init() {
	issueListCmd.Flags().String("brand", "", "filter by brand ID")
	issueShowCmd.Flags().String("output", "", "write the issue HTML to a file")

	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issueShowCmd)
	rootCmd.AddCommand(issueCmd)
}
