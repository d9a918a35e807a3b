package gitinfo

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
)

// GitTracker implements domain.ChangeTracker using go-git: the files a
// generation pass touched are the worktree's added, modified and
// untracked paths.
type GitTracker struct{}

func New() *GitTracker {
	return &GitTracker{}
}

func (g *GitTracker) TouchedFiles(repoPath string) ([]string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	var touched []string
	for file, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		touched = append(touched, file)
	}
	sort.Strings(touched)
	return touched, nil
}
