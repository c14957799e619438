package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Kavirubc/gh-runner/internal/config"
	"github.com/Kavirubc/gh-runner/internal/github"
	"github.com/Kavirubc/gh-runner/internal/output"
	"github.com/Kavirubc/gh-runner/internal/store"
	"github.com/spf13/cobra"
)

const defaultStateDir = ".auto-claude/github"

var (
	stateDir  string
	repoFlag  string
	outputFmt string
	version   = "dev"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gh-runner",
		Short: "Inspect and maintain GitHub runner state",
		Long: `gh-runner reads and updates the state written by the GitHub automation
runners: PR review results, issue triage results, auto-fix progress and
runner settings.

State lives under --dir (default .auto-claude/github). Tokens are taken from
GH_TOKEN, GITHUB_TOKEN or the gh CLI login and are never written to disk.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&stateDir, "dir", defaultStateDir, "runner state directory")
	cmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "repository (owner/repo); defaults to the current git remote")
	cmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format: text, json or yaml")

	cmd.AddCommand(newReviewCmd())
	cmd.AddCommand(newTriageCmd())
	cmd.AddCommand(newAutoFixCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func Execute() error {
	return rootCmd.Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gh-runner version %s\n", version)
		},
	}
}

func newUI(cmd *cobra.Command) (*output.UI, error) {
	format, err := output.ParseFormat(outputFmt)
	if err != nil {
		return nil, err
	}
	return output.New(format, cmd.OutOrStdout(), cmd.ErrOrStderr()), nil
}

func openStore() *store.Store {
	return store.New(stateDir)
}

// resolveRepo prefers --repo and falls back to the git remote of the working directory
func resolveRepo() (github.Repo, error) {
	if repoFlag == "" {
		return github.CurrentRepo()
	}
	owner, name, err := github.ParseRepo(repoFlag)
	if err != nil {
		return github.Repo{}, err
	}
	return github.Repo{Host: config.DefaultHost(), Owner: owner, Name: name}, nil
}

// parseNumber accepts "42" or "#42"
func parseNumber(arg, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s number: %s", what, arg)
	}
	return n, nil
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
