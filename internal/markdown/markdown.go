// Package markdown extracts headings and titles from document bodies.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading represents a parsed heading.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-indexed
}

// ExtractHeadings extracts headings from markdown content using goldmark.
// startLine is the file line the content begins on, so headings in a body
// that follows front matter report file line numbers.
func ExtractHeadings(content string, startLine int) []Heading {
	var headings []Heading

	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	lineStarts := computeLineStarts(content)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		headingText := strings.TrimSpace(inlineText(heading, source))
		if headingText == "" {
			return ast.WalkSkipChildren, nil
		}

		line := startLine
		if heading.Lines().Len() > 0 {
			line = startLine + offsetToLine(lineStarts, heading.Lines().At(0).Start)
		}

		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  headingText,
			Line:  line,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// Title returns the text of the first level-1 heading, falling back to the
// first heading of any level. It returns "" when the content has none.
func Title(content string) string {
	headings := ExtractHeadings(content, 1)
	for _, h := range headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	if len(headings) > 0 {
		return headings[0].Text
	}
	return ""
}

// inlineText concatenates the text segments below n, including those nested
// in emphasis, links and code spans.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
