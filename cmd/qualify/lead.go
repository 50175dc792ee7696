package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/qualifier/internal/leads"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Qualify a single lead and print the result as JSON",
	Example: `  qualify lead --name "Jane Doe" --email jane@acme.com \
    --message "We need 200 seats by Q3"`,
	Args: cobra.NoArgs,
	RunE: runLead,
}

func init() {
	leadCmd.Flags().String("name", "", "Lead name")
	leadCmd.Flags().String("email", "", "Lead email address")
	leadCmd.Flags().String("message", "", "Inquiry text")
	leadCmd.Flags().Bool("pretty", false, "Indent JSON output")
}

func runLead(cmd *cobra.Command, args []string) error {
	var cmdArgs leads.QualifyCommand
	var err error

	flags := cmd.Flags()
	if cmdArgs.Name, err = flags.GetString("name"); err != nil {
		return err
	}
	if cmdArgs.Email, err = flags.GetString("email"); err != nil {
		return err
	}
	if cmdArgs.Message, err = flags.GetString("message"); err != nil {
		return err
	}
	pretty, err := flags.GetBool("pretty")
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	result := s.leads.Qualify(cmd.Context(), cmdArgs)
	return writeJSON(cmd.OutOrStdout(), result, pretty)
}
