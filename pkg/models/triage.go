package models

import (
	"encoding/json"
)

// TriageResult is the outcome of triaging a single issue
type TriageResult struct {
	IssueNumber        int            `json:"issue_number"`
	Repo               string         `json:"repo"`
	Category           TriageCategory `json:"category"`
	Confidence         float64        `json:"confidence"` // 0.0 to 1.0
	LabelsToAdd        []string       `json:"labels_to_add"`
	LabelsToRemove     []string       `json:"labels_to_remove"`
	IsDuplicate        bool           `json:"is_duplicate"`
	DuplicateOf        *int           `json:"duplicate_of"`
	IsSpam             bool           `json:"is_spam"`
	IsFeatureCreep     bool           `json:"is_feature_creep"`
	SuggestedBreakdown []string       `json:"suggested_breakdown"`
	Priority           Priority       `json:"priority"`
	Comment            *string        `json:"comment"`
	TriagedAt          Timestamp      `json:"triaged_at"`
}

// NewTriageResult creates a triage result stamped with the current time
func NewTriageResult(issueNumber int, repo string, category TriageCategory, confidence float64) (*TriageResult, error) {
	r := &TriageResult{
		IssueNumber:        issueNumber,
		Repo:               repo,
		Category:           category,
		Confidence:         confidence,
		LabelsToAdd:        []string{},
		LabelsToRemove:     []string{},
		SuggestedBreakdown: []string{},
		Priority:           PriorityMedium,
		TriagedAt:          Now(),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the confidence range and the enumerated fields
func (r *TriageResult) Validate() error {
	if r.Confidence < 0 || r.Confidence > 1 {
		return &ValidationError{Field: "confidence", Message: "must be between 0 and 1"}
	}
	if !r.Category.Valid() {
		return &InvalidEnumValueError{Type: "TriageCategory", Field: "category", Value: string(r.Category)}
	}
	if !r.Priority.Valid() {
		return &InvalidEnumValueError{Type: "Priority", Field: "priority", Value: string(r.Priority)}
	}
	return nil
}

// MarkDuplicate flags the issue as a duplicate of another issue
func (r *TriageResult) MarkDuplicate(of int) {
	r.IsDuplicate = true
	r.DuplicateOf = &of
}

type triageResultJSON TriageResult

func (r TriageResult) MarshalJSON() ([]byte, error) {
	out := triageResultJSON(r)
	out.LabelsToAdd = nonNil(out.LabelsToAdd)
	out.LabelsToRemove = nonNil(out.LabelsToRemove)
	out.SuggestedBreakdown = nonNil(out.SuggestedBreakdown)
	return json.Marshal(out)
}

func (r *TriageResult) UnmarshalJSON(data []byte) error {
	d, err := newFieldDecoder("TriageResult", data)
	if err != nil {
		return err
	}

	out := TriageResult{
		LabelsToAdd:        []string{},
		LabelsToRemove:     []string{},
		SuggestedBreakdown: []string{},
		Priority:           PriorityMedium,
	}
	d.required("issue_number", &out.IssueNumber)
	d.required("repo", &out.Repo)
	d.required("category", &out.Category)
	d.required("confidence", &out.Confidence)
	d.optional("labels_to_add", &out.LabelsToAdd)
	d.optional("labels_to_remove", &out.LabelsToRemove)
	d.optional("is_duplicate", &out.IsDuplicate)
	d.optional("duplicate_of", &out.DuplicateOf)
	d.optional("is_spam", &out.IsSpam)
	d.optional("is_feature_creep", &out.IsFeatureCreep)
	d.optional("suggested_breakdown", &out.SuggestedBreakdown)
	d.optional("priority", &out.Priority)
	d.optional("comment", &out.Comment)
	d.optional("triaged_at", &out.TriagedAt)
	if d.err != nil {
		return d.err
	}
	if err := out.Validate(); err != nil {
		return err
	}
	if out.TriagedAt.IsZero() {
		out.TriagedAt = Now()
	}

	*r = out
	return nil
}

// DecodeTriageResult parses a triage result from its JSON encoding
func DecodeTriageResult(data []byte) (*TriageResult, error) {
	var r TriageResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
