package cli

import (
	"fmt"

	"github.com/Kavirubc/gh-runner/internal/output"
	"github.com/Kavirubc/gh-runner/internal/store"
	"github.com/Kavirubc/gh-runner/pkg/models"
	"github.com/spf13/cobra"
)

func newAutoFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "autofix",
		Aliases: []string{"auto-fix"},
		Short:   "Inspect and update auto-fix progress",
	}

	cmd.AddCommand(newAutoFixShowCmd())
	cmd.AddCommand(newAutoFixListCmd())
	cmd.AddCommand(newAutoFixStartCmd())
	cmd.AddCommand(newAutoFixStatusCmd())
	cmd.AddCommand(newAutoFixAdvanceCmd())
	return cmd
}

func loadAutoFix(s *store.Store, arg string) (*models.AutoFixState, error) {
	issueNumber, err := parseNumber(arg, "issue")
	if err != nil {
		return nil, err
	}
	st, err := s.LoadAutoFix(issueNumber)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("no auto-fix state saved for issue #%d", issueNumber)
	}
	return st, nil
}

func printAutoFix(ui *output.UI, st *models.AutoFixState) error {
	if ui.Structured() {
		return ui.Encode(st)
	}

	ui.Info("Issue #%d in %s: %s", st.IssueNumber, st.Repo, output.StatusColor(string(st.Status())))
	fmt.Fprintf(ui.Out, "  URL: %s\n", output.Cyan(st.IssueURL))
	if st.SpecID != nil {
		fmt.Fprintf(ui.Out, "  Spec: %s (%s)\n", *st.SpecID, deref(st.SpecDir, "-"))
	}
	if st.PRNumber != nil {
		fmt.Fprintf(ui.Out, "  PR: #%d %s\n", *st.PRNumber, output.Cyan(deref(st.PRURL, "")))
	}
	fmt.Fprintf(ui.Out, "  Created: %s\n", st.CreatedAt())
	fmt.Fprintf(ui.Out, "  Updated: %s\n", st.UpdatedAt())
	if len(st.BotComments) > 0 {
		fmt.Fprintf(ui.Out, "  Bot comments: %d\n", len(st.BotComments))
	}
	if st.Error != nil {
		ui.Error("%s", *st.Error)
	}
	return nil
}

func newAutoFixShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <issue-number>",
		Short: "Show the auto-fix state for an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}
			st, err := loadAutoFix(openStore(), args[0])
			if err != nil {
				return err
			}
			return printAutoFix(ui, st)
		},
	}
}

func newAutoFixListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the auto-fix queue from the issues index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}

			var filter models.AutoFixStatus
			if status != "" {
				if filter, err = models.ParseAutoFixStatus(status); err != nil {
					return err
				}
			}

			idx, err := openStore().ListAutoFixQueue()
			if err != nil {
				return err
			}

			entries := make([]store.AutoFixIndexEntry, 0, len(idx.AutoFixQueue))
			for _, e := range idx.AutoFixQueue {
				if filter == "" || e.Status == filter {
					entries = append(entries, e)
				}
			}

			if ui.Structured() {
				return ui.Encode(entries)
			}
			if len(entries) == 0 {
				ui.Info("Auto-fix queue is empty")
				return nil
			}

			table := ui.Table([]string{"Issue", "Repo", "Status", "Spec", "PR", "Updated"})
			for _, e := range entries {
				pr := ""
				if e.PRNumber != nil {
					pr = fmt.Sprintf("#%d", *e.PRNumber)
				}
				_ = table.Append([]string{
					fmt.Sprintf("#%d", e.IssueNumber),
					e.Repo,
					output.StatusColor(string(e.Status)),
					deref(e.SpecID, ""),
					pr,
					e.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			return table.Render()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show entries with this status")
	return cmd
}

func newAutoFixStartCmd() *cobra.Command {
	var issueURL string

	cmd := &cobra.Command{
		Use:   "start <issue-number>",
		Short: "Queue an issue for auto-fix",
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

			s := openStore()
			existing, err := s.LoadAutoFix(issueNumber)
			if err != nil {
				return err
			}
			if existing != nil && !existing.Status().IsTerminal() {
				return fmt.Errorf("issue #%d already has an auto-fix in progress (%s)", issueNumber, existing.Status())
			}

			repo, err := resolveRepo()
			if err != nil {
				return err
			}
			if issueURL == "" {
				issueURL = fmt.Sprintf("https://%s/%s/issues/%d", repo.Host, repo.FullName(), issueNumber)
			}

			st := models.NewAutoFixState(issueNumber, issueURL, repo.FullName())
			if err := s.SaveAutoFix(st); err != nil {
				return err
			}
			ui.Success("Queued issue #%d for auto-fix", issueNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&issueURL, "url", "", "issue URL (derived from --repo when omitted)")
	return cmd
}

func newAutoFixStatusCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "status <issue-number> <status>",
		Short: "Set the auto-fix status for an issue",
		Long: `Set the auto-fix status for an issue and refresh the issues index.

Statuses: pending, analyzing, creating_spec, building, qa_review,
pr_created, completed, failed. Any status may be set regardless of the
current one.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}
			status, err := models.ParseAutoFixStatus(args[1])
			if err != nil {
				return err
			}
			if reason != "" && status != models.AutoFixFailed {
				return fmt.Errorf("--error only applies to status %s, not %s", models.AutoFixFailed, status)
			}

			s := openStore()
			st, err := loadAutoFix(s, args[0])
			if err != nil {
				return err
			}

			prev := st.Status()
			if reason != "" {
				st.Fail(reason)
			} else if err := st.UpdateStatus(status); err != nil {
				return err
			}
			if err := s.SaveAutoFix(st); err != nil {
				return err
			}

			ui.Success("Issue #%d: %s -> %s", st.IssueNumber, prev, output.StatusColor(string(st.Status())))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "error", "", "failure reason (with status failed)")
	return cmd
}

func newAutoFixAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <issue-number>",
		Short: "Move an auto-fix to the next pipeline stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}

			s := openStore()
			st, err := loadAutoFix(s, args[0])
			if err != nil {
				return err
			}
			if st.Status().IsTerminal() {
				return fmt.Errorf("issue #%d is already %s", st.IssueNumber, st.Status())
			}

			prev := st.Status()
			if err := st.UpdateStatus(prev.Next()); err != nil {
				return err
			}
			if err := s.SaveAutoFix(st); err != nil {
				return err
			}

			ui.Success("Issue #%d: %s -> %s", st.IssueNumber, prev, output.StatusColor(string(st.Status())))
			return nil
		},
	}
}
