package cmd

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// GitIgnore handles .gitignore-style pattern matching during directory walks.
type GitIgnore struct {
	patterns []string
	root     string
}

// NewGitIgnore creates a new GitIgnore instance rooted at root, seeded with
// a default ignore set plus any patterns found in root/.gitignore.
func NewGitIgnore(root string) *GitIgnore {
	gi := &GitIgnore{
		root: root,
		patterns: []string{
			".git/",
			".git",
			"node_modules/",
			"node_modules",
			".DS_Store",
			"*.log",
			"dist/",
			"build/",
			"bin/",
			".cache/",
			"*.tmp",
			"vendor/",
			".env",
			".env.local",
		},
	}
	gi.loadGitIgnore(filepath.Join(root, ".gitignore"))
	return gi
}

func (gi *GitIgnore) loadGitIgnore(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gi.patterns = append(gi.patterns, line)
	}
}

// ShouldIgnore reports whether path matches any known ignore pattern.
func (gi *GitIgnore) ShouldIgnore(path string) bool {
	relPath, err := filepath.Rel(gi.root, path)
	if err != nil {
		return false
	}
	for _, pattern := range gi.patterns {
		if gi.matchPattern(relPath, pattern) {
			return true
		}
	}
	return false
}

func (gi *GitIgnore) matchPattern(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.HasSuffix(pattern, "/") {
		dirPattern := strings.TrimSuffix(pattern, "/")
		for _, part := range strings.Split(path, "/") {
			if matched, _ := filepath.Match(dirPattern, part); matched {
				return true
			}
		}
		if strings.HasPrefix(path, dirPattern+"/") {
			return true
		}
	}

	if strings.Contains(pattern, "/") {
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	} else {
		base := filepath.Base(path)
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		for _, part := range strings.Split(path, "/") {
			if matched, _ := filepath.Match(pattern, part); matched {
				return true
			}
		}
	}

	return false
}

// WalkFiles walks root, returning every file not matched by .gitignore-style
// patterns. It is the directory-discovery step for `multi-search index`; the
// actual (title, body) extraction from file bytes is the caller's concern.
func WalkFiles(root string) ([]string, error) {
	gi := NewGitIgnore(root)
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if gi.ShouldIgnore(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		if info.IsDir() {
			nested := filepath.Join(path, ".gitignore")
			if _, err := os.Stat(nested); err == nil {
				gi.loadGitIgnore(nested)
			}
		}
		return nil
	})

	return files, err
}
