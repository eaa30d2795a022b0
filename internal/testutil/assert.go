package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (s *TestSite) AssertFileExists(relPath string) {
	s.t.Helper()
	if !s.FileExists(relPath) {
		s.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (s *TestSite) AssertFileNotExists(relPath string) {
	s.t.Helper()
	if s.FileExists(relPath) {
		s.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (s *TestSite) AssertFileContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertDirExists fails the test if the directory does not exist.
func (s *TestSite) AssertDirExists(relPath string) {
	s.t.Helper()
	info, err := os.Stat(filepath.Join(s.Path, filepath.FromSlash(relPath)))
	if os.IsNotExist(err) {
		s.t.Errorf("expected directory to exist: %s", relPath)
		return
	}
	if err == nil && !info.IsDir() {
		s.t.Errorf("expected %s to be a directory, but it's a file", relPath)
	}
}
