package config

import (
	"errors"
	"fmt"

	"github.com/Kavirubc/gh-runner/internal/store"
)

const (
	// DefaultModel is used when config.json does not name a model
	DefaultModel = "claude-sonnet-4-20250514"

	redacted = "***"
)

// ThinkingLevel controls how much reasoning budget the analysis model gets
type ThinkingLevel string

const (
	ThinkingNone       ThinkingLevel = "none"
	ThinkingLow        ThinkingLevel = "low"
	ThinkingMedium     ThinkingLevel = "medium"
	ThinkingHigh       ThinkingLevel = "high"
	ThinkingUltrathink ThinkingLevel = "ultrathink"
)

// Valid reports whether l is a known thinking level
func (l ThinkingLevel) Valid() bool {
	switch l {
	case ThinkingNone, ThinkingLow, ThinkingMedium, ThinkingHigh, ThinkingUltrathink:
		return true
	}
	return false
}

// Settings holds every runner option that may be written to disk.
// It has no token fields.
type Settings struct {
	// Auto-fix settings
	AutoFixEnabled       bool     `json:"auto_fix_enabled" yaml:"auto_fix_enabled"`
	AutoFixLabels        []string `json:"auto_fix_labels" yaml:"auto_fix_labels"`
	RequireHumanApproval bool     `json:"require_human_approval" yaml:"require_human_approval"`

	// Triage settings
	TriageEnabled         bool    `json:"triage_enabled" yaml:"triage_enabled"`
	DuplicateThreshold    float64 `json:"duplicate_threshold" yaml:"duplicate_threshold"`
	SpamThreshold         float64 `json:"spam_threshold" yaml:"spam_threshold"`
	FeatureCreepThreshold float64 `json:"feature_creep_threshold" yaml:"feature_creep_threshold"`
	EnableTriageComments  bool    `json:"enable_triage_comments" yaml:"enable_triage_comments"`

	// PR review settings
	PRReviewEnabled bool `json:"pr_review_enabled" yaml:"pr_review_enabled"`
	AutoPostReviews bool `json:"auto_post_reviews" yaml:"auto_post_reviews"`
	AllowFixCommits bool `json:"allow_fix_commits" yaml:"allow_fix_commits"`

	// Model settings
	Model         string        `json:"model" yaml:"model"`
	ThinkingLevel ThinkingLevel `json:"thinking_level" yaml:"thinking_level"`
}

// DefaultSettings returns the settings used for any key missing from config.json
func DefaultSettings() Settings {
	return Settings{
		AutoFixLabels:         []string{"auto-fix"},
		RequireHumanApproval:  true,
		DuplicateThreshold:    0.80,
		SpamThreshold:         0.75,
		FeatureCreepThreshold: 0.70,
		AllowFixCommits:       true,
		Model:                 DefaultModel,
		ThinkingLevel:         ThinkingMedium,
	}
}

// Secrets are supplied by the caller on every run and never read from disk
type Secrets struct {
	Token    string
	Repo     string // owner/repo
	BotToken string // optional separate bot account token
}

// GitHubRunnerConfig is the merged runtime configuration for the runners
type GitHubRunnerConfig struct {
	Token    string
	Repo     string
	BotToken string

	Settings
}

// RedactedConfig is a display form of the config with tokens masked
type RedactedConfig struct {
	Token    string  `json:"token" yaml:"token"`
	Repo     string  `json:"repo" yaml:"repo"`
	BotToken *string `json:"bot_token" yaml:"bot_token"`
	Settings `yaml:",inline"`
}

// settingsFile is what config.json holds: the repo name plus Settings
type settingsFile struct {
	Repo string `json:"repo"`
	Settings
}

// New builds a config from secrets and settings
func New(secrets Secrets, settings Settings) *GitHubRunnerConfig {
	return &GitHubRunnerConfig{
		Token:    secrets.Token,
		Repo:     secrets.Repo,
		BotToken: secrets.BotToken,
		Settings: settings,
	}
}

// LoadSettings reads config.json from dir and merges it with secrets.
// Missing keys, or a missing file, fall back to DefaultSettings. Any
// token-like keys in the file are ignored.
func LoadSettings(dir string, secrets Secrets) (*GitHubRunnerConfig, error) {
	settings := DefaultSettings()
	if _, err := store.ReadJSON(store.New(dir).ConfigPath(), &settings); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.AutoFixLabels == nil {
		settings.AutoFixLabels = []string{}
	}
	return New(secrets, settings), nil
}

// SaveSettings writes the non-secret settings to dir/config.json.
// Invalid settings are rejected rather than written.
func (c *GitHubRunnerConfig) SaveSettings(dir string) error {
	if errs := c.Settings.Validate(); len(errs) > 0 {
		return fmt.Errorf("refusing to save invalid settings: %w", errors.Join(errs...))
	}

	file := settingsFile{Repo: c.Repo, Settings: c.Settings}
	if err := store.WriteJSON(store.New(dir).ConfigPath(), file); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Redacted returns the config with the tokens replaced by a placeholder
func (c *GitHubRunnerConfig) Redacted() RedactedConfig {
	out := RedactedConfig{
		Token:    redacted,
		Repo:     c.Repo,
		Settings: c.Settings,
	}
	if c.BotToken != "" {
		mask := redacted
		out.BotToken = &mask
	}
	return out
}

// String keeps tokens out of logs and %v output
func (c *GitHubRunnerConfig) String() string {
	return fmt.Sprintf("GitHubRunnerConfig{repo=%s token=%s}", c.Repo, redacted)
}

// ActiveToken returns the bot token when one is configured, otherwise the main token
func (c *GitHubRunnerConfig) ActiveToken() string {
	if c.BotToken != "" {
		return c.BotToken
	}
	return c.Token
}

// HasAutoFixLabel reports whether any of labels triggers auto-fix
func (c *GitHubRunnerConfig) HasAutoFixLabel(labels []string) bool {
	for _, l := range labels {
		for _, want := range c.AutoFixLabels {
			if l == want {
				return true
			}
		}
	}
	return false
}
