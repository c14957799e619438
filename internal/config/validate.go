package config

import (
	"fmt"

	"github.com/Kavirubc/gh-runner/internal/github"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the full configuration, including secrets, for errors
func Validate(cfg *GitHubRunnerConfig) []error {
	var errs []error

	if cfg.Token == "" {
		errs = append(errs, ValidationError{"token", "required"})
	}

	if cfg.Repo == "" {
		errs = append(errs, ValidationError{"repo", "required"})
	} else if _, _, err := github.ParseRepo(cfg.Repo); err != nil {
		errs = append(errs, ValidationError{"repo", "must be in format 'owner/repo'"})
	}

	return append(errs, cfg.Settings.Validate()...)
}

// Validate checks the settings that are written to config.json
func (s Settings) Validate() []error {
	var errs []error

	thresholds := []struct {
		field string
		value float64
	}{
		{"duplicate_threshold", s.DuplicateThreshold},
		{"spam_threshold", s.SpamThreshold},
		{"feature_creep_threshold", s.FeatureCreepThreshold},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > 1 {
			errs = append(errs, ValidationError{th.field, "must be between 0 and 1"})
		}
	}

	if s.AutoFixEnabled && len(s.AutoFixLabels) == 0 {
		errs = append(errs, ValidationError{"auto_fix_labels", "required when auto-fix is enabled"})
	}

	if s.Model == "" {
		errs = append(errs, ValidationError{"model", "required"})
	}

	if !s.ThinkingLevel.Valid() {
		errs = append(errs, ValidationError{"thinking_level", fmt.Sprintf("unknown level %q", s.ThinkingLevel)})
	}

	return errs
}
