package config

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ResolvePaths anchors relative content and assets roots. A root that exists
// relative to workDir is kept as given so reported paths stay short; otherwise
// it is resolved against the enclosing git worktree, which lets the tool run
// from any subdirectory of the repository.
func (c *Config) ResolvePaths(workDir string) {
	var repoRoot string
	var looked bool
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		if _, err := os.Stat(filepath.Join(workDir, p)); err == nil {
			return p
		}
		if !looked {
			repoRoot, _ = FindWorktreeRoot(workDir)
			looked = true
		}
		if repoRoot == "" {
			return p
		}
		candidate := filepath.Join(repoRoot, p)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		return p
	}

	c.ContentRoot = resolve(c.ContentRoot)
	c.AssetsRoot = resolve(c.AssetsRoot)
}

// FindWorktreeRoot returns the root of the git worktree containing start.
func FindWorktreeRoot(start string) (string, error) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}
