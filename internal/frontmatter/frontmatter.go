// Package frontmatter extracts and decodes the metadata block at the top of a
// markdown document.
//
// A block opens with a "---" line, optionally followed by a language tag
// ("---json"), and closes at the next "---" line. YAML is the default
// language.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aidanlsb/sitedates/internal/isodate"
)

// DefaultLanguage is used when the opening fence has no language tag.
const DefaultLanguage = "yaml"

const fence = "---"

// ErrNotDateString is returned when a date field holds a non-string value.
var ErrNotDateString = errors.New("not a date string")

// ErrInvalid wraps every failure to decode a front matter block, including
// an unknown or unsupported language.
var ErrInvalid = errors.New("invalid front matter")

// Document is a markdown file split into its front matter and body.
type Document struct {
	// Language is the engine that decoded the block.
	Language string

	// Raw is the text between the fences.
	Raw string

	// Fields are the decoded top-level values.
	Fields map[string]any

	// Strings are top-level string scalars as written in the source.
	Strings map[string]string

	// EndLine is the line of the closing fence (1-indexed).
	EndLine int

	// Body is everything after the closing fence.
	Body string
}

// Bounds returns the closing fence line index and the fence language.
// It only detects front matter when the first line opens a fence.
// If the block is present but unclosed, endLine is -1.
func Bounds(lines []string) (endLine int, language string, ok bool) {
	if len(lines) == 0 {
		return -1, "", false
	}
	first := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(first, fence) {
		return -1, "", false
	}
	language = strings.TrimSpace(strings.TrimPrefix(first, fence))
	if strings.HasPrefix(language, "-") {
		// "----" is a horizontal rule, not a fence.
		return -1, "", false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == fence {
			return i, language, true
		}
	}

	return -1, language, true
}

// Parse splits content into front matter and body and decodes the block
// with the engine its fence names. Returns nil if there is no front matter
// or the block is never closed.
func Parse(content string) (*Document, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(content, "\n")

	endLine, language, ok := Bounds(lines)
	if !ok || endLine == -1 {
		return nil, nil
	}

	engine, err := Lookup(language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	raw := strings.Join(lines[1:endLine], "\n")
	data, err := engine.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return &Document{
		Language: engine.Name(),
		Raw:      raw,
		Fields:   data.Fields,
		Strings:  data.Strings,
		EndLine:  endLine + 1,
		Body:     strings.Join(lines[endLine+1:], "\n"),
	}, nil
}

// DateString returns the source text of a date field. ok is false when the
// field is absent or null.
func (d *Document) DateString(field string) (string, bool, error) {
	value, present := d.Fields[field]
	if !present || value == nil {
		return "", false, nil
	}
	s, ok := d.Strings[field]
	if !ok {
		return "", true, fmt.Errorf("front matter field %q is %T: %w", field, value, ErrNotDateString)
	}
	return s, true, nil
}

// Date parses a front-matter field with isodate. ok reports whether the
// field was present.
func (d *Document) Date(field string) (time.Time, bool, error) {
	s, ok, err := d.DateString(field)
	if err != nil || !ok {
		return time.Time{}, ok, err
	}

	t, err := isodate.Parse(s)
	if err != nil {
		return time.Time{}, true, err
	}
	return t, true, nil
}
