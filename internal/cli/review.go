package cli

import (
	"fmt"

	"github.com/Kavirubc/gh-runner/internal/output"
	"github.com/spf13/cobra"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect saved PR review results",
	}

	cmd.AddCommand(newReviewShowCmd())
	cmd.AddCommand(newReviewListCmd())
	return cmd
}

func newReviewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <pr-number>",
		Short: "Show the saved review for a pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}
			prNumber, err := parseNumber(args[0], "PR")
			if err != nil {
				return err
			}

			r, err := openStore().LoadReview(prNumber)
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("no review saved for PR #%d", prNumber)
			}

			if ui.Structured() {
				return ui.Encode(r)
			}

			ui.Info("PR #%d in %s: %s", r.PRNumber, r.Repo, output.StatusColor(string(r.OverallStatus)))
			fmt.Fprintf(ui.Out, "  Reviewed: %s\n", r.ReviewedAt)
			if r.ReviewID != nil {
				fmt.Fprintf(ui.Out, "  Review ID: %d\n", *r.ReviewID)
			}
			if !r.Success {
				ui.Error("Review failed: %s", deref(r.Error, "unknown error"))
			}
			if r.Summary != "" {
				fmt.Fprintf(ui.Out, "\n%s\n", r.Summary)
			}
			if len(r.Findings) == 0 {
				return nil
			}

			fmt.Fprintf(ui.Out, "\n%d findings (%d fixable):\n", len(r.Findings), r.FixableCount())
			table := ui.Table([]string{"Severity", "Category", "Location", "Title", "Fixable"})
			for _, f := range r.Findings {
				loc := fmt.Sprintf("%s:%d", f.File, f.Line)
				if f.EndLine != nil && *f.EndLine != f.Line {
					loc = fmt.Sprintf("%s-%d", loc, *f.EndLine)
				}
				fixable := ""
				if f.Fixable {
					fixable = "yes"
				}
				_ = table.Append([]string{
					output.StatusColor(string(f.Severity)),
					string(f.Category),
					loc,
					f.Title,
					fixable,
				})
			}
			return table.Render()
		},
	}
}

func newReviewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reviews from the PR index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}

			idx, err := openStore().ListReviews()
			if err != nil {
				return err
			}
			if ui.Structured() {
				return ui.Encode(idx)
			}
			if len(idx.Reviews) == 0 {
				ui.Info("No reviews saved")
				return nil
			}

			table := ui.Table([]string{"PR", "Repo", "Status", "Findings", "Reviewed"})
			for _, e := range idx.Reviews {
				_ = table.Append([]string{
					fmt.Sprintf("#%d", e.PRNumber),
					e.Repo,
					output.StatusColor(string(e.OverallStatus)),
					fmt.Sprintf("%d", e.FindingsCount),
					e.ReviewedAt.Format("2006-01-02 15:04"),
				})
			}
			return table.Render()
		},
	}
}
