package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTriageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Inspect saved issue triage results",
	}

	cmd.AddCommand(newTriageShowCmd())
	return cmd
}

func newTriageShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <issue-number>",
		Short: "Show the saved triage result for an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}
			issueNumber, err := parseNumber(args[0], "issue")
			if err != nil {
				return err
			}

			r, err := openStore().LoadTriage(issueNumber)
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("no triage result saved for issue #%d", issueNumber)
			}

			if ui.Structured() {
				return ui.Encode(r)
			}

			ui.Info("Issue #%d in %s: %s (%.0f%% confidence)", r.IssueNumber, r.Repo, r.Category, r.Confidence*100)
			fmt.Fprintf(ui.Out, "  Priority: %s\n", r.Priority)
			fmt.Fprintf(ui.Out, "  Triaged: %s\n", r.TriagedAt)
			if len(r.LabelsToAdd) > 0 {
				fmt.Fprintf(ui.Out, "  Add labels: %s\n", strings.Join(r.LabelsToAdd, ", "))
			}
			if len(r.LabelsToRemove) > 0 {
				fmt.Fprintf(ui.Out, "  Remove labels: %s\n", strings.Join(r.LabelsToRemove, ", "))
			}
			if r.IsDuplicate {
				if r.DuplicateOf != nil {
					ui.Warning("Duplicate of #%d", *r.DuplicateOf)
				} else {
					ui.Warning("Duplicate")
				}
			}
			if r.IsSpam {
				ui.Warning("Flagged as spam")
			}
			if r.IsFeatureCreep {
				ui.Warning("Flagged as feature creep")
				for _, item := range r.SuggestedBreakdown {
					fmt.Fprintf(ui.Out, "    - %s\n", item)
				}
			}
			if r.Comment != nil {
				fmt.Fprintf(ui.Out, "\n%s\n", *r.Comment)
			}
			return nil
		},
	}
}
