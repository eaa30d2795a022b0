// Package testutil provides reusable test utilities for site integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestSite represents a temporary site source tree for testing.
type TestSite struct {
	Path   string
	t      *testing.T
	config string
	files  map[string]string
}

// NewTestSite creates a new test site builder.
// Call Build() to create the actual directory.
func NewTestSite(t *testing.T) *TestSite {
	t.Helper()
	return &TestSite{
		t:     t,
		files: make(map[string]string),
	}
}

// WithConfig sets the sdate.toml content for the site.
func (s *TestSite) WithConfig(toml string) *TestSite {
	s.config = toml
	return s
}

// WithFile adds a file to the site.
// The path is relative to the site root and uses forward slashes.
func (s *TestSite) WithFile(path, content string) *TestSite {
	s.files[path] = content
	return s
}

// WithPost adds a markdown file with a date in its front matter.
func (s *TestSite) WithPost(path, date, title string) *TestSite {
	return s.WithFile(path, "---\ndate: "+date+"\n---\n# "+title+"\n")
}

// Build creates the site directory and all configured files.
func (s *TestSite) Build() *TestSite {
	s.t.Helper()

	s.Path = s.t.TempDir()
	if s.config != "" {
		s.writeFile("sdate.toml", s.config)
	}
	for path, content := range s.files {
		s.writeFile(path, content)
	}
	return s
}

func (s *TestSite) writeFile(relPath, content string) {
	s.t.Helper()
	fullPath := filepath.Join(s.Path, filepath.FromSlash(relPath))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		s.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the site.
func (s *TestSite) ReadFile(relPath string) string {
	s.t.Helper()
	fullPath := filepath.Join(s.Path, filepath.FromSlash(relPath))
	content, err := os.ReadFile(fullPath)
	if err != nil {
		s.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the site.
func (s *TestSite) FileExists(relPath string) bool {
	s.t.Helper()
	_, err := os.Stat(filepath.Join(s.Path, filepath.FromSlash(relPath)))
	return err == nil
}
