package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Kavirubc/gh-runner/pkg/models"
)

const lastUpdatedKey = "last_updated"

// ReviewIndexEntry summarizes one saved review
type ReviewIndexEntry struct {
	PRNumber      int                  `json:"pr_number"`
	Repo          string               `json:"repo"`
	OverallStatus models.ReviewVerdict `json:"overall_status"`
	FindingsCount int                  `json:"findings_count"`
	ReviewedAt    models.Timestamp     `json:"reviewed_at"`
}

// ReviewIndex is the content of pr/index.json
type ReviewIndex struct {
	Reviews     []ReviewIndexEntry `json:"reviews"`
	LastUpdated *models.Timestamp  `json:"last_updated"`
}

// AutoFixIndexEntry summarizes one saved auto-fix state
type AutoFixIndexEntry struct {
	IssueNumber int                  `json:"issue_number"`
	Repo        string               `json:"repo"`
	Status      models.AutoFixStatus `json:"status"`
	SpecID      *string              `json:"spec_id"`
	PRNumber    *int                 `json:"pr_number"`
	UpdatedAt   models.Timestamp     `json:"updated_at"`
}

// IssueIndex is the content of issues/index.json. Triaged entries are
// not written by this package and are carried through untouched.
type IssueIndex struct {
	Triaged      []json.RawMessage   `json:"triaged"`
	AutoFixQueue []AutoFixIndexEntry `json:"auto_fix_queue"`
	LastUpdated  *models.Timestamp   `json:"last_updated"`
}

func newReviewEntry(r *models.ReviewResult) ReviewIndexEntry {
	return ReviewIndexEntry{
		PRNumber:      r.PRNumber,
		Repo:          r.Repo,
		OverallStatus: r.OverallStatus,
		FindingsCount: len(r.Findings),
		ReviewedAt:    r.ReviewedAt,
	}
}

func newAutoFixEntry(st *models.AutoFixState) AutoFixIndexEntry {
	return AutoFixIndexEntry{
		IssueNumber: st.IssueNumber,
		Repo:        st.Repo,
		Status:      st.Status(),
		SpecID:      st.SpecID,
		PRNumber:    st.PRNumber,
		UpdatedAt:   st.UpdatedAt(),
	}
}

// upsert replaces every entry with the same key in place, or appends
// entry when none matches.
func upsert[E any](entries []E, entry E, key func(E) int) []E {
	k := key(entry)
	found := false
	for i := range entries {
		if key(entries[i]) == k {
			entries[i] = entry
			found = true
		}
	}
	if !found {
		entries = append(entries, entry)
	}
	return entries
}

// ListReviews reads the PR index. A missing index yields an empty one.
func (s *Store) ListReviews() (*ReviewIndex, error) {
	idx := &ReviewIndex{Reviews: []ReviewIndexEntry{}}
	if _, err := ReadJSON(s.reviewIndexPath(), idx); err != nil {
		return nil, err
	}
	if idx.Reviews == nil {
		idx.Reviews = []ReviewIndexEntry{}
	}
	return idx, nil
}

// ListAutoFixQueue reads the issues index. A missing index yields an empty one.
func (s *Store) ListAutoFixQueue() (*IssueIndex, error) {
	idx := &IssueIndex{Triaged: []json.RawMessage{}, AutoFixQueue: []AutoFixIndexEntry{}}
	if _, err := ReadJSON(s.issueIndexPath(), idx); err != nil {
		return nil, err
	}
	if idx.Triaged == nil {
		idx.Triaged = []json.RawMessage{}
	}
	if idx.AutoFixQueue == nil {
		idx.AutoFixQueue = []AutoFixIndexEntry{}
	}
	return idx, nil
}

func (s *Store) updateReviewIndex(r *models.ReviewResult) error {
	return updateIndex(s.reviewIndexPath(), "reviews", "pr_number", newReviewEntry(r), "reviews")
}

func (s *Store) updateIssueIndex(st *models.AutoFixState) error {
	return updateIndex(s.issueIndexPath(), "auto_fix_queue", "issue_number", newAutoFixEntry(st), "triaged", "auto_fix_queue")
}

// updateIndex upserts entry into the list under listKey and stamps
// last_updated. Every other key, and every other entry, is written back
// as it was read. A missing index starts from a skeleton holding an
// empty list for each of skeleton plus a null last_updated.
func updateIndex(path, listKey, idKey string, entry any, skeleton ...string) error {
	idx, err := readRawObject(path)
	if err != nil {
		return err
	}
	if idx == nil {
		idx = newRawObject()
		for _, key := range skeleton {
			idx.set(key, json.RawMessage("[]"))
		}
		idx.set(lastUpdatedKey, json.RawMessage("null"))
	}

	var entries []json.RawMessage
	if v, ok := idx.values[listKey]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &entries); err != nil {
			return fmt.Errorf("failed to parse %s in %s: %w", listKey, filepath.Base(path), err)
		}
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal index entry: %w", err)
	}
	entries = upsert(entries, json.RawMessage(raw), entryID(idKey))

	list, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", listKey, err)
	}
	now, err := json.Marshal(models.Now())
	if err != nil {
		return err
	}
	idx.set(listKey, list)
	idx.set(lastUpdatedKey, now)

	return WriteJSON(path, idx)
}

// entryID reads the numeric key of an index entry. Entries without one
// never match.
func entryID(field string) func(json.RawMessage) int {
	return func(raw json.RawMessage) int {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return -1
		}
		var id int
		if err := json.Unmarshal(fields[field], &id); err != nil {
			return -1
		}
		return id
	}
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
