package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.WithField("path", "posts/a.md").Info("indexed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug output without verbose: %q", out)
	}
	if !strings.Contains(out, "indexed") || !strings.Contains(out, "path=posts/a.md") {
		t.Fatalf("unexpected output: %q", out)
	}

	buf.Reset()
	New(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("verbose logger dropped debug output: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("dropped")
	if log.IsLevelEnabled(logrus.InfoLevel) {
		t.Fatalf("discard logger should not enable info")
	}
}
