package cli

import (
	"fmt"

	"github.com/Kavirubc/gh-runner/internal/config"
	"github.com/Kavirubc/gh-runner/internal/output"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, validate and change runner settings",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

// loadConfig merges config.json with secrets resolved for the current repo.
// A repo that cannot be resolved leaves Repo empty so validate can report it.
func loadConfig() (*config.GitHubRunnerConfig, error) {
	host := config.DefaultHost()
	fullName := ""
	if repo, err := resolveRepo(); err == nil {
		host = repo.Host
		fullName = repo.FullName()
	} else if repoFlag != "" {
		fullName = repoFlag
	}
	return config.LoadSettings(stateDir, config.ResolveSecrets(host, fullName))
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings with tokens redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if !ui.Structured() {
				ui.Format = output.FormatYAML
			}
			return ui.Encode(cfg.Redacted())
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the settings and tokens for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			errs := config.Validate(cfg)
			if len(errs) == 0 {
				ui.Success("Configuration is valid")
				return nil
			}
			for _, e := range errs {
				ui.Error("%s", e)
			}
			return fmt.Errorf("configuration has %d error(s)", len(errs))
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		autoFixEnabled        bool
		autoFixLabels         []string
		requireHumanApproval  bool
		triageEnabled         bool
		duplicateThreshold    float64
		spamThreshold         float64
		featureCreepThreshold float64
		enableTriageComments  bool
		prReviewEnabled       bool
		autoPostReviews       bool
		allowFixCommits       bool
		model                 string
		thinkingLevel         string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change runner settings in config.json",
		Long: `Change runner settings in config.json. Only the flags given are changed;
every other setting keeps its current value. Tokens cannot be set here.`,
		Example: `  gh-runner config set --auto-fix --auto-fix-labels auto-fix,bot-fix
  gh-runner config set --duplicate-threshold 0.9 --thinking-level high`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			s := &cfg.Settings
			if flags.Changed("auto-fix") {
				s.AutoFixEnabled = autoFixEnabled
			}
			if flags.Changed("auto-fix-labels") {
				s.AutoFixLabels = autoFixLabels
			}
			if flags.Changed("require-approval") {
				s.RequireHumanApproval = requireHumanApproval
			}
			if flags.Changed("triage") {
				s.TriageEnabled = triageEnabled
			}
			if flags.Changed("duplicate-threshold") {
				s.DuplicateThreshold = duplicateThreshold
			}
			if flags.Changed("spam-threshold") {
				s.SpamThreshold = spamThreshold
			}
			if flags.Changed("feature-creep-threshold") {
				s.FeatureCreepThreshold = featureCreepThreshold
			}
			if flags.Changed("triage-comments") {
				s.EnableTriageComments = enableTriageComments
			}
			if flags.Changed("pr-review") {
				s.PRReviewEnabled = prReviewEnabled
			}
			if flags.Changed("auto-post-reviews") {
				s.AutoPostReviews = autoPostReviews
			}
			if flags.Changed("allow-fix-commits") {
				s.AllowFixCommits = allowFixCommits
			}
			if flags.Changed("model") {
				s.Model = model
			}
			if flags.Changed("thinking-level") {
				s.ThinkingLevel = config.ThinkingLevel(thinkingLevel)
			}

			if err := cfg.SaveSettings(stateDir); err != nil {
				return err
			}
			ui.Success("Settings saved to %s", openStore().ConfigPath())
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&autoFixEnabled, "auto-fix", false, "enable auto-fix")
	f.StringSliceVar(&autoFixLabels, "auto-fix-labels", nil, "labels that trigger auto-fix")
	f.BoolVar(&requireHumanApproval, "require-approval", true, "require human approval before auto-fix")
	f.BoolVar(&triageEnabled, "triage", false, "enable issue triage")
	f.Float64Var(&duplicateThreshold, "duplicate-threshold", 0.80, "confidence needed to flag a duplicate")
	f.Float64Var(&spamThreshold, "spam-threshold", 0.75, "confidence needed to flag spam")
	f.Float64Var(&featureCreepThreshold, "feature-creep-threshold", 0.70, "confidence needed to flag feature creep")
	f.BoolVar(&enableTriageComments, "triage-comments", false, "post triage comments on issues")
	f.BoolVar(&prReviewEnabled, "pr-review", false, "enable PR review")
	f.BoolVar(&autoPostReviews, "auto-post-reviews", false, "post reviews without confirmation")
	f.BoolVar(&allowFixCommits, "allow-fix-commits", true, "allow the reviewer to push fix commits")
	f.StringVar(&model, "model", config.DefaultModel, "model used for analysis")
	f.StringVar(&thinkingLevel, "thinking-level", string(config.ThinkingMedium), "none, low, medium, high or ultrathink")
	return cmd
}
