package github

import (
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"
)

// ParseRepo splits "owner/repo" into owner and repo
func ParseRepo(fullRepo string) (string, string, error) {
	parts := strings.Split(fullRepo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format: %s (expected owner/repo)", fullRepo)
	}
	return parts[0], parts[1], nil
}

// Repo identifies a repository on a GitHub host
type Repo struct {
	Host  string
	Owner string
	Name  string
}

// FullName returns the owner/name form used in records
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// CurrentRepo resolves the repository of the working directory from its
// git remotes, honoring GH_REPO the same way the gh CLI does.
func CurrentRepo() (Repo, error) {
	r, err := repository.Current()
	if err != nil {
		return Repo{}, fmt.Errorf("failed to determine current repository: %w", err)
	}
	return Repo{Host: r.Host, Owner: r.Owner, Name: r.Name}, nil
}
