package models

import (
	"fmt"

	"github.com/google/uuid"
)

// NewFindingID generates a deterministic finding ID from its location,
// so re-running a review on the same PR keeps finding IDs stable.
func NewFindingID(repo string, prNumber int, file string, line int) string {
	data := fmt.Sprintf("%s#%d:%s:%d", repo, prNumber, file, line)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(data)).String()
}
