package models

import (
	"encoding/json"
)

// AutoFixState tracks an issue through the automated fix-and-PR pipeline.
// Status and the timestamps are unexported: UpdateStatus is the only way
// to change status, and it always refreshes UpdatedAt.
type AutoFixState struct {
	IssueNumber int
	IssueURL    string
	Repo        string
	SpecID      *string
	SpecDir     *string
	PRNumber    *int
	PRURL       *string
	BotComments []string
	Error       *string

	status    AutoFixStatus
	createdAt Timestamp
	updatedAt Timestamp
}

// NewAutoFixState creates a pending auto-fix state stamped with the current time
func NewAutoFixState(issueNumber int, issueURL, repo string) *AutoFixState {
	now := Now()
	return &AutoFixState{
		IssueNumber: issueNumber,
		IssueURL:    issueURL,
		Repo:        repo,
		BotComments: []string{},
		status:      AutoFixPending,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (s *AutoFixState) Status() AutoFixStatus { return s.status }
func (s *AutoFixState) CreatedAt() Timestamp  { return s.createdAt }
func (s *AutoFixState) UpdatedAt() Timestamp  { return s.updatedAt }

// UpdateStatus sets the status and refreshes UpdatedAt. Any known status
// is accepted regardless of the current one; the pipeline order is advisory.
func (s *AutoFixState) UpdateStatus(status AutoFixStatus) error {
	if !status.Valid() {
		return &InvalidEnumValueError{Type: "AutoFixStatus", Field: "status", Value: string(status)}
	}
	s.status = status
	s.touch()
	return nil
}

// Fail moves the state to failed and records why
func (s *AutoFixState) Fail(reason string) {
	s.status = AutoFixFailed
	s.Error = &reason
	s.touch()
}

// AttachSpec records the work spec created for the fix
func (s *AutoFixState) AttachSpec(id, dir string) {
	s.SpecID = &id
	s.SpecDir = &dir
}

// AttachPR records the pull request opened for the fix
func (s *AutoFixState) AttachPR(number int, url string) {
	s.PRNumber = &number
	s.PRURL = &url
}

// AddBotComment records a comment posted by the automation
func (s *AutoFixState) AddBotComment(comment string) {
	s.BotComments = append(s.BotComments, comment)
}

// touch never moves UpdatedAt backwards, even if the wall clock does
func (s *AutoFixState) touch() {
	now := Now()
	if now.Before(s.updatedAt.Time) {
		return
	}
	s.updatedAt = now
}

// Validate checks the status and timestamp order, so a saved state can
// always be decoded again
func (s *AutoFixState) Validate() error {
	if !s.status.Valid() {
		return &InvalidEnumValueError{Type: "AutoFixStatus", Field: "status", Value: string(s.status)}
	}
	if s.updatedAt.Before(s.createdAt.Time) {
		return &ValidationError{Field: "updated_at", Message: "must not be before created_at"}
	}
	return nil
}

type autoFixStateJSON struct {
	IssueNumber int           `json:"issue_number"`
	IssueURL    string        `json:"issue_url"`
	Repo        string        `json:"repo"`
	Status      AutoFixStatus `json:"status"`
	SpecID      *string       `json:"spec_id"`
	SpecDir     *string       `json:"spec_dir"`
	PRNumber    *int          `json:"pr_number"`
	PRURL       *string       `json:"pr_url"`
	BotComments []string      `json:"bot_comments"`
	Error       *string       `json:"error"`
	CreatedAt   Timestamp     `json:"created_at"`
	UpdatedAt   Timestamp     `json:"updated_at"`
}

func (s AutoFixState) MarshalJSON() ([]byte, error) {
	return json.Marshal(autoFixStateJSON{
		IssueNumber: s.IssueNumber,
		IssueURL:    s.IssueURL,
		Repo:        s.Repo,
		Status:      s.status,
		SpecID:      s.SpecID,
		SpecDir:     s.SpecDir,
		PRNumber:    s.PRNumber,
		PRURL:       s.PRURL,
		BotComments: nonNil(s.BotComments),
		Error:       s.Error,
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	})
}

func (s *AutoFixState) UnmarshalJSON(data []byte) error {
	d, err := newFieldDecoder("AutoFixState", data)
	if err != nil {
		return err
	}

	out := AutoFixState{
		BotComments: []string{},
		status:      AutoFixPending,
	}
	d.required("issue_number", &out.IssueNumber)
	d.required("issue_url", &out.IssueURL)
	d.required("repo", &out.Repo)
	d.optional("status", &out.status)
	d.optional("spec_id", &out.SpecID)
	d.optional("spec_dir", &out.SpecDir)
	d.optional("pr_number", &out.PRNumber)
	d.optional("pr_url", &out.PRURL)
	d.optional("bot_comments", &out.BotComments)
	d.optional("error", &out.Error)
	d.optional("created_at", &out.createdAt)
	d.optional("updated_at", &out.updatedAt)
	if d.err != nil {
		return d.err
	}

	switch {
	case out.createdAt.IsZero() && out.updatedAt.IsZero():
		out.createdAt = Now()
		out.updatedAt = out.createdAt
	case out.createdAt.IsZero():
		out.createdAt = out.updatedAt
	case out.updatedAt.IsZero():
		out.updatedAt = Now()
	}
	if err := out.Validate(); err != nil {
		return err
	}

	*s = out
	return nil
}

// DecodeAutoFixState parses an auto-fix state from its JSON encoding
func DecodeAutoFixState(data []byte) (*AutoFixState, error) {
	var s AutoFixState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
