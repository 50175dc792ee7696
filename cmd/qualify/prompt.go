package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/qualifier/internal/prompts"
)

var promptCmd = &cobra.Command{
	Use:       "prompt <stage>",
	Short:     "Render the reasoning prompt for a stage",
	Long:      "Renders the prompt sent to the language model. Stages: reason, reason_degraded.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(prompts.StageReason), string(prompts.StageReasonDegraded)},
	RunE:      runPrompt,
}

func init() {
	promptCmd.Flags().String("message", "<lead message>", "Message to render into the prompt")
	promptCmd.Flags().String("company", "<company summary>", "Company summary to render into the prompt")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	stage, err := prompts.ParseStage(args[0])
	if err != nil {
		return err
	}

	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return err
	}
	company, err := cmd.Flags().GetString("company")
	if err != nil {
		return err
	}

	vars := map[string]any{prompts.VarMessage: message}
	if stage == prompts.StageReason {
		vars[prompts.VarCompany] = company
	}

	out, err := prompts.Render(stage, vars)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
