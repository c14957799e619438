package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	testToken    = "ghp_supersecretvalue123"
	testBotToken = "ghp_botsecretvalue456"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadSettings(t.TempDir(), Secrets{Token: testToken, Repo: "o/r"})
	require.NoError(t, err)

	assert.Equal(t, testToken, cfg.Token)
	assert.Equal(t, "o/r", cfg.Repo)
	assert.Empty(t, cfg.BotToken)
	assert.Equal(t, DefaultSettings(), cfg.Settings)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.False(t, s.AutoFixEnabled)
	assert.Equal(t, []string{"auto-fix"}, s.AutoFixLabels)
	assert.True(t, s.RequireHumanApproval)
	assert.False(t, s.TriageEnabled)
	assert.Equal(t, 0.80, s.DuplicateThreshold)
	assert.Equal(t, 0.75, s.SpamThreshold)
	assert.Equal(t, 0.70, s.FeatureCreepThreshold)
	assert.False(t, s.EnableTriageComments)
	assert.False(t, s.PRReviewEnabled)
	assert.False(t, s.AutoPostReviews)
	assert.True(t, s.AllowFixCommits)
	assert.Equal(t, DefaultModel, s.Model)
	assert.Equal(t, ThinkingMedium, s.ThinkingLevel)
	assert.Empty(t, s.Validate())
}

func TestLoadSettings_PartialFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "repo": "someone/else",
  "token": "from-disk",
  "triage_enabled": true,
  "spam_threshold": 0.9,
  "require_human_approval": false
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644))

	cfg, err := LoadSettings(dir, Secrets{Token: testToken, Repo: "o/r", BotToken: testBotToken})
	require.NoError(t, err)

	// Secrets and repo always come from the caller
	assert.Equal(t, testToken, cfg.Token)
	assert.Equal(t, "o/r", cfg.Repo)
	assert.Equal(t, testBotToken, cfg.BotToken)

	assert.True(t, cfg.TriageEnabled)
	assert.Equal(t, 0.9, cfg.SpamThreshold)
	assert.False(t, cfg.RequireHumanApproval)

	// Absent keys keep their defaults
	assert.True(t, cfg.AllowFixCommits)
	assert.Equal(t, 0.80, cfg.DuplicateThreshold)
	assert.Equal(t, []string{"auto-fix"}, cfg.AutoFixLabels)
}

func TestLoadSettings_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0o644))

	_, err := LoadSettings(dir, Secrets{Token: testToken, Repo: "o/r"})
	assert.Error(t, err)
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "github")

	settings := DefaultSettings()
	settings.AutoFixEnabled = true
	settings.AutoFixLabels = []string{"auto-fix", "bot-fix"}
	settings.PRReviewEnabled = true
	settings.ThinkingLevel = ThinkingHigh
	cfg := New(Secrets{Token: testToken, Repo: "o/r", BotToken: testBotToken}, settings)

	require.NoError(t, cfg.SaveSettings(dir))

	loaded, err := LoadSettings(dir, Secrets{Token: "other", Repo: "o/r"})
	require.NoError(t, err)
	assert.Equal(t, settings, loaded.Settings)
	assert.Equal(t, "other", loaded.Token)
	assert.Empty(t, loaded.BotToken)
}

func TestSaveSettings_NeverWritesTokens(t *testing.T) {
	dir := t.TempDir()
	cfg := New(Secrets{Token: testToken, Repo: "o/r", BotToken: testBotToken}, DefaultSettings())
	require.NoError(t, cfg.SaveSettings(dir))

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), testToken)
	assert.NotContains(t, string(data), testBotToken)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "token")
	assert.NotContains(t, m, "bot_token")
	assert.Equal(t, "o/r", m["repo"])
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"repo\": \"o/r\",\n  \"auto_fix_enabled\""))
}

func TestSaveSettings_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	settings := DefaultSettings()
	settings.DuplicateThreshold = 1.5
	cfg := New(Secrets{Token: testToken, Repo: "o/r"}, settings)

	err := cfg.SaveSettings(dir)
	var vErr ValidationError
	require.True(t, errors.As(err, &vErr), "got %v", err)
	assert.Equal(t, "duplicate_threshold", vErr.Field)

	_, statErr := os.Stat(filepath.Join(dir, "config.json"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestRedacted(t *testing.T) {
	tests := []struct {
		name         string
		botToken     string
		wantBotToken *string
	}{
		{name: "without bot token"},
		{name: "with bot token", botToken: testBotToken, wantBotToken: strPtr("***")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New(Secrets{Token: testToken, Repo: "o/r", BotToken: tt.botToken}, DefaultSettings())
			r := cfg.Redacted()

			assert.Equal(t, "***", r.Token)
			assert.Equal(t, "o/r", r.Repo)
			assert.Equal(t, tt.wantBotToken, r.BotToken)

			jsonData, err := json.Marshal(r)
			require.NoError(t, err)
			yamlData, err := yaml.Marshal(r)
			require.NoError(t, err)

			for _, out := range []string{string(jsonData), string(yamlData), cfg.String(), fmt.Sprintf("%v", cfg)} {
				assert.NotContains(t, out, testToken)
				assert.NotContains(t, out, testBotToken)
			}
			assert.Contains(t, string(yamlData), "spam_threshold: 0.75")
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *GitHubRunnerConfig {
		return New(Secrets{Token: testToken, Repo: "o/r"}, DefaultSettings())
	}

	tests := []struct {
		name      string
		mutate    func(c *GitHubRunnerConfig)
		wantField string
	}{
		{name: "valid", mutate: func(c *GitHubRunnerConfig) {}},
		{name: "missing token", mutate: func(c *GitHubRunnerConfig) { c.Token = "" }, wantField: "token"},
		{name: "missing repo", mutate: func(c *GitHubRunnerConfig) { c.Repo = "" }, wantField: "repo"},
		{name: "bad repo", mutate: func(c *GitHubRunnerConfig) { c.Repo = "just-a-name" }, wantField: "repo"},
		{name: "negative spam threshold", mutate: func(c *GitHubRunnerConfig) { c.SpamThreshold = -0.1 }, wantField: "spam_threshold"},
		{name: "feature creep above one", mutate: func(c *GitHubRunnerConfig) { c.FeatureCreepThreshold = 1.01 }, wantField: "feature_creep_threshold"},
		{name: "unknown thinking level", mutate: func(c *GitHubRunnerConfig) { c.ThinkingLevel = "max" }, wantField: "thinking_level"},
		{name: "empty model", mutate: func(c *GitHubRunnerConfig) { c.Model = "" }, wantField: "model"},
		{
			name: "auto-fix without labels",
			mutate: func(c *GitHubRunnerConfig) {
				c.AutoFixEnabled = true
				c.AutoFixLabels = nil
			},
			wantField: "auto_fix_labels",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			errs := Validate(cfg)
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			var vErr ValidationError
			require.True(t, errors.As(errs[0], &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestHasAutoFixLabel(t *testing.T) {
	cfg := New(Secrets{Token: testToken, Repo: "o/r"}, DefaultSettings())

	assert.True(t, cfg.HasAutoFixLabel([]string{"bug", "auto-fix"}))
	assert.False(t, cfg.HasAutoFixLabel([]string{"bug"}))
	assert.False(t, cfg.HasAutoFixLabel(nil))
}

func TestActiveToken(t *testing.T) {
	cfg := New(Secrets{Token: testToken, Repo: "o/r"}, DefaultSettings())
	assert.Equal(t, testToken, cfg.ActiveToken())

	cfg.BotToken = testBotToken
	assert.Equal(t, testBotToken, cfg.ActiveToken())
}

func TestResolveSecrets(t *testing.T) {
	t.Setenv("GH_TOKEN", testToken)
	t.Setenv(botTokenEnv, testBotToken)

	s := ResolveSecrets("github.com", "o/r")
	assert.Equal(t, testToken, s.Token)
	assert.Equal(t, "o/r", s.Repo)
	assert.Equal(t, testBotToken, s.BotToken)
}

func strPtr(s string) *string { return &s }
