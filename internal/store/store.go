// Package store persists runner records as JSON files under the GitHub
// state directory, with a per-directory index for listing.
//
// Layout:
//
//	<dir>/config.json
//	<dir>/pr/review_<n>.json
//	<dir>/pr/index.json
//	<dir>/issues/triage_<n>.json
//	<dir>/issues/autofix_<n>.json
//	<dir>/issues/index.json
//
// Index updates are read-modify-write without locking. Two processes
// saving at the same time can lose an index entry; the record files
// themselves are unaffected.
package store

import (
	"fmt"
	"path/filepath"

	"github.com/Kavirubc/gh-runner/pkg/models"
)

const (
	// ConfigFile holds the runner settings, relative to the state directory
	ConfigFile = "config.json"

	prDir     = "pr"
	issuesDir = "issues"
	indexFile = "index.json"
)

// Store reads and writes records under a single GitHub state directory
type Store struct {
	dir string
}

// New creates a store rooted at dir. Nothing is created until the first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root directory of the store
func (s *Store) Dir() string {
	return s.dir
}

// ConfigPath returns the location of the runner settings file
func (s *Store) ConfigPath() string {
	return filepath.Join(s.dir, ConfigFile)
}

func (s *Store) reviewPath(prNumber int) string {
	return filepath.Join(s.dir, prDir, fmt.Sprintf("review_%d.json", prNumber))
}

func (s *Store) triagePath(issueNumber int) string {
	return filepath.Join(s.dir, issuesDir, fmt.Sprintf("triage_%d.json", issueNumber))
}

func (s *Store) autoFixPath(issueNumber int) string {
	return filepath.Join(s.dir, issuesDir, fmt.Sprintf("autofix_%d.json", issueNumber))
}

func (s *Store) reviewIndexPath() string {
	return filepath.Join(s.dir, prDir, indexFile)
}

func (s *Store) issueIndexPath() string {
	return filepath.Join(s.dir, issuesDir, indexFile)
}

// SaveReview validates and writes the review, then updates the PR index
func (s *Store) SaveReview(r *models.ReviewResult) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid review for PR #%d: %w", r.PRNumber, err)
	}
	if err := WriteJSON(s.reviewPath(r.PRNumber), r); err != nil {
		return fmt.Errorf("save review for PR #%d: %w", r.PRNumber, err)
	}
	if err := s.updateReviewIndex(r); err != nil {
		return fmt.Errorf("update review index for PR #%d: %w", r.PRNumber, err)
	}
	return nil
}

// LoadReview returns the saved review for prNumber, or nil if there is none
func (s *Store) LoadReview(prNumber int) (*models.ReviewResult, error) {
	data, found, err := readFile(s.reviewPath(prNumber))
	if err != nil || !found {
		return nil, err
	}
	r, err := models.DecodeReviewResult(data)
	if err != nil {
		return nil, fmt.Errorf("decode review for PR #%d: %w", prNumber, err)
	}
	return r, nil
}

// SaveTriage validates and writes the triage result. Triage results have no index.
func (s *Store) SaveTriage(r *models.TriageResult) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid triage for issue #%d: %w", r.IssueNumber, err)
	}
	if err := WriteJSON(s.triagePath(r.IssueNumber), r); err != nil {
		return fmt.Errorf("save triage for issue #%d: %w", r.IssueNumber, err)
	}
	return nil
}

// LoadTriage returns the saved triage result for issueNumber, or nil if there is none
func (s *Store) LoadTriage(issueNumber int) (*models.TriageResult, error) {
	data, found, err := readFile(s.triagePath(issueNumber))
	if err != nil || !found {
		return nil, err
	}
	r, err := models.DecodeTriageResult(data)
	if err != nil {
		return nil, fmt.Errorf("decode triage for issue #%d: %w", issueNumber, err)
	}
	return r, nil
}

// SaveAutoFix validates and writes the auto-fix state, then updates the issues index
func (s *Store) SaveAutoFix(st *models.AutoFixState) error {
	if err := st.Validate(); err != nil {
		return fmt.Errorf("invalid auto-fix state for issue #%d: %w", st.IssueNumber, err)
	}
	if err := WriteJSON(s.autoFixPath(st.IssueNumber), st); err != nil {
		return fmt.Errorf("save auto-fix state for issue #%d: %w", st.IssueNumber, err)
	}
	if err := s.updateIssueIndex(st); err != nil {
		return fmt.Errorf("update issues index for issue #%d: %w", st.IssueNumber, err)
	}
	return nil
}

// LoadAutoFix returns the saved auto-fix state for issueNumber, or nil if there is none
func (s *Store) LoadAutoFix(issueNumber int) (*models.AutoFixState, error) {
	data, found, err := readFile(s.autoFixPath(issueNumber))
	if err != nil || !found {
		return nil, err
	}
	st, err := models.DecodeAutoFixState(data)
	if err != nil {
		return nil, fmt.Errorf("decode auto-fix state for issue #%d: %w", issueNumber, err)
	}
	return st, nil
}
