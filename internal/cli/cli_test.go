package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kavirubc/gh-runner/internal/store"
	"github.com/Kavirubc/gh-runner/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dir", dir, "--repo", "octo/widgets"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"#7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseNumber(tt.arg, "issue")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReviewShowAndList(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)

	r := models.NewReviewResult(12, "octo/widgets", true)
	r.Summary = "Looks mostly fine"
	require.NoError(t, r.AddFinding(models.ReviewFinding{
		ID:          models.NewFindingID("octo/widgets", 12, "main.go", 10),
		Severity:    models.SeverityHigh,
		Category:    models.CategorySecurity,
		Title:       "Unchecked input",
		Description: "input is used without validation",
		File:        "main.go",
		Line:        10,
		Fixable:     true,
	}))
	require.NoError(t, s.SaveReview(r))

	out, err := run(t, dir, "review", "show", "#12")
	require.NoError(t, err)
	assert.Contains(t, out, "PR #12 in octo/widgets")
	assert.Contains(t, out, "Unchecked input")
	assert.Contains(t, out, "main.go:10")

	out, err = run(t, dir, "-o", "json", "review", "list")
	require.NoError(t, err)
	var idx store.ReviewIndex
	require.NoError(t, json.Unmarshal([]byte(out), &idx))
	require.Len(t, idx.Reviews, 1)
	assert.Equal(t, 12, idx.Reviews[0].PRNumber)
	assert.Equal(t, 1, idx.Reviews[0].FindingsCount)
}

func TestReviewShowMissing(t *testing.T) {
	_, err := run(t, t.TempDir(), "review", "show", "99")
	assert.ErrorContains(t, err, "no review saved for PR #99")
}

func TestTriageShow(t *testing.T) {
	dir := t.TempDir()
	r, err := models.NewTriageResult(5, "octo/widgets", models.TriageDuplicate, 0.9)
	require.NoError(t, err)
	r.MarkDuplicate(3)
	require.NoError(t, store.New(dir).SaveTriage(r))

	out, err := run(t, dir, "triage", "show", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Issue #5 in octo/widgets: duplicate (90% confidence)")
	assert.Contains(t, out, "Duplicate of #3")

	out, err = run(t, dir, "-o", "yaml", "triage", "show", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "issue_number: 5")
	assert.Contains(t, out, "duplicate_of: 3")
}

func TestAutoFixLifecycle(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)

	_, err := run(t, dir, "autofix", "start", "8")
	require.NoError(t, err)

	st, err := s.LoadAutoFix(8)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, models.AutoFixPending, st.Status())
	assert.Equal(t, "octo/widgets", st.Repo)
	assert.Contains(t, st.IssueURL, "/octo/widgets/issues/8")

	_, err = run(t, dir, "autofix", "start", "8")
	assert.ErrorContains(t, err, "already has an auto-fix in progress")

	_, err = run(t, dir, "autofix", "advance", "8")
	require.NoError(t, err)
	st, err = s.LoadAutoFix(8)
	require.NoError(t, err)
	assert.Equal(t, models.AutoFixAnalyzing, st.Status())

	_, err = run(t, dir, "autofix", "status", "8", "qa_review")
	require.NoError(t, err)

	_, err = run(t, dir, "autofix", "status", "8", "failed", "--error", "build broke")
	require.NoError(t, err)
	st, err = s.LoadAutoFix(8)
	require.NoError(t, err)
	assert.Equal(t, models.AutoFixFailed, st.Status())
	require.NotNil(t, st.Error)
	assert.Equal(t, "build broke", *st.Error)

	_, err = run(t, dir, "autofix", "advance", "8")
	assert.ErrorContains(t, err, "already failed")

	out, err := run(t, dir, "-o", "json", "autofix", "list", "--status", "failed")
	require.NoError(t, err)
	var entries []store.AutoFixIndexEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 8, entries[0].IssueNumber)
	assert.Equal(t, models.AutoFixFailed, entries[0].Status)

	out, err = run(t, dir, "-o", "json", "autofix", "list", "--status", "pending")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestAutoFixStatusRejectsUnknown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.New(dir).SaveAutoFix(models.NewAutoFixState(2, "https://github.com/octo/widgets/issues/2", "octo/widgets")))

	_, err := run(t, dir, "autofix", "status", "2", "shipped")
	var enumErr *models.InvalidEnumValueError
	assert.ErrorAs(t, err, &enumErr)
}

func TestAutoFixStatusErrorNeedsFailed(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.SaveAutoFix(models.NewAutoFixState(4, "https://github.com/octo/widgets/issues/4", "octo/widgets")))

	_, err := run(t, dir, "autofix", "status", "4", "building", "--error", "flaky test")
	assert.ErrorContains(t, err, "--error only applies to status failed")

	st, err := s.LoadAutoFix(4)
	require.NoError(t, err)
	assert.Equal(t, models.AutoFixPending, st.Status())
	assert.Nil(t, st.Error)
}

func TestConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GH_TOKEN", "ghp_secret")
	t.Setenv("GITHUB_BOT_TOKEN", "")

	_, err := run(t, dir, "config", "set", "--auto-fix", "--auto-fix-labels", "fix-me,bot", "--spam-threshold", "0.5")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, store.ConfigFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ghp_secret")
	assert.NotContains(t, string(data), "token")

	var saved map[string]any
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, true, saved["auto_fix_enabled"])
	assert.Equal(t, 0.5, saved["spam_threshold"])
	assert.Equal(t, 0.8, saved["duplicate_threshold"])
	assert.Equal(t, "octo/widgets", saved["repo"])

	out, err := run(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Regexp(t, `token: ['"]?\*\*\*`, out)
	assert.Contains(t, out, "- fix-me")
	assert.NotContains(t, out, "ghp_secret")

	_, err = run(t, dir, "config", "validate")
	assert.NoError(t, err)
}

func TestConfigSetRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "config", "set", "--duplicate-threshold", "1.5")
	assert.ErrorContains(t, err, "duplicate_threshold")
	assert.NoFileExists(t, filepath.Join(dir, store.ConfigFile))

	_, err = run(t, dir, "config", "set", "--thinking-level", "extreme")
	assert.ErrorContains(t, err, "thinking_level")
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "gh-runner version dev\n", out)
}
