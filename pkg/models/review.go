package models

import (
	"encoding/json"
	"fmt"
)

// ReviewFinding is a single defect reported by a PR review
type ReviewFinding struct {
	ID           string         `json:"id"`
	Severity     ReviewSeverity `json:"severity"`
	Category     ReviewCategory `json:"category"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	File         string         `json:"file"`
	Line         int            `json:"line"`
	EndLine      *int           `json:"end_line"`
	SuggestedFix *string        `json:"suggested_fix"`
	Fixable      bool           `json:"fixable"`
}

// Validate checks the line range of the finding
func (f *ReviewFinding) Validate() error {
	if f.EndLine != nil && *f.EndLine < f.Line {
		return &ValidationError{Field: "end_line", Message: "must not be before line"}
	}
	return nil
}

func (f *ReviewFinding) UnmarshalJSON(data []byte) error {
	d, err := newFieldDecoder("ReviewFinding", data)
	if err != nil {
		return err
	}

	var out ReviewFinding
	d.required("id", &out.ID)
	d.required("severity", &out.Severity)
	d.required("category", &out.Category)
	d.required("title", &out.Title)
	d.required("description", &out.Description)
	d.required("file", &out.File)
	d.required("line", &out.Line)
	d.optional("end_line", &out.EndLine)
	d.optional("suggested_fix", &out.SuggestedFix)
	d.optional("fixable", &out.Fixable)
	if d.err != nil {
		return d.err
	}
	if err := out.Validate(); err != nil {
		return err
	}

	*f = out
	return nil
}

// DecodeReviewFinding parses a finding from its JSON encoding
func DecodeReviewFinding(data []byte) (*ReviewFinding, error) {
	var f ReviewFinding
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ReviewResult is the outcome of reviewing one pull request
type ReviewResult struct {
	PRNumber      int             `json:"pr_number"`
	Repo          string          `json:"repo"`
	Success       bool            `json:"success"`
	Findings      []ReviewFinding `json:"findings"`
	Summary       string          `json:"summary"`
	OverallStatus ReviewVerdict   `json:"overall_status"`
	ReviewID      *int            `json:"review_id"`
	ReviewedAt    Timestamp       `json:"reviewed_at"`
	Error         *string         `json:"error"`
}

// NewReviewResult creates a review result stamped with the current time
func NewReviewResult(prNumber int, repo string, success bool) *ReviewResult {
	return &ReviewResult{
		PRNumber:      prNumber,
		Repo:          repo,
		Success:       success,
		Findings:      []ReviewFinding{},
		OverallStatus: VerdictComment,
		ReviewedAt:    Now(),
	}
}

// AddFinding appends f after checking its line range
func (r *ReviewResult) AddFinding(f ReviewFinding) error {
	if err := f.Validate(); err != nil {
		return err
	}
	r.Findings = append(r.Findings, f)
	return nil
}

// Validate checks the verdict and every finding, so a saved review can
// always be decoded again
func (r *ReviewResult) Validate() error {
	if !r.OverallStatus.Valid() {
		return &InvalidEnumValueError{Type: "ReviewVerdict", Field: "overall_status", Value: string(r.OverallStatus)}
	}
	for i := range r.Findings {
		f := &r.Findings[i]
		if !f.Severity.Valid() {
			return &InvalidEnumValueError{Type: "ReviewSeverity", Field: fmt.Sprintf("findings[%d].severity", i), Value: string(f.Severity)}
		}
		if !f.Category.Valid() {
			return &InvalidEnumValueError{Type: "ReviewCategory", Field: fmt.Sprintf("findings[%d].category", i), Value: string(f.Category)}
		}
		if err := f.Validate(); err != nil {
			return fmt.Errorf("findings[%d]: %w", i, err)
		}
	}
	return nil
}

// MarkFailed records that the review could not be completed
func (r *ReviewResult) MarkFailed(reason string) {
	r.Success = false
	r.Error = &reason
}

// CountBySeverity tallies findings per severity
func (r *ReviewResult) CountBySeverity() map[ReviewSeverity]int {
	counts := make(map[ReviewSeverity]int)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}

// FixableCount returns how many findings carry an automatic fix
func (r *ReviewResult) FixableCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Fixable {
			n++
		}
	}
	return n
}

type reviewResultJSON ReviewResult

func (r ReviewResult) MarshalJSON() ([]byte, error) {
	out := reviewResultJSON(r)
	if out.Findings == nil {
		out.Findings = []ReviewFinding{}
	}
	return json.Marshal(out)
}

func (r *ReviewResult) UnmarshalJSON(data []byte) error {
	d, err := newFieldDecoder("ReviewResult", data)
	if err != nil {
		return err
	}

	out := ReviewResult{
		Findings:      []ReviewFinding{},
		OverallStatus: VerdictComment,
	}
	d.required("pr_number", &out.PRNumber)
	d.required("repo", &out.Repo)
	d.required("success", &out.Success)
	d.optional("findings", &out.Findings)
	d.optional("summary", &out.Summary)
	d.optional("overall_status", &out.OverallStatus)
	d.optional("review_id", &out.ReviewID)
	d.optional("reviewed_at", &out.ReviewedAt)
	d.optional("error", &out.Error)
	if d.err != nil {
		return d.err
	}
	if out.ReviewedAt.IsZero() {
		out.ReviewedAt = Now()
	}

	*r = out
	return nil
}

// DecodeReviewResult parses a review result from its JSON encoding
func DecodeReviewResult(data []byte) (*ReviewResult, error) {
	var r ReviewResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
