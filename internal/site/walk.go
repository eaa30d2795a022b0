// Package site walks a static site source tree, extracts document dates and
// titles, and builds the output directory and document index.
package site

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aidanlsb/sitedates/internal/frontmatter"
	"github.com/aidanlsb/sitedates/internal/index"
	"github.com/aidanlsb/sitedates/internal/markdown"
	"github.com/aidanlsb/sitedates/internal/paths"
	"github.com/aidanlsb/sitedates/internal/slugs"
)

// Document is the result of processing one markdown file.
type Document struct {
	Path         string
	RelativePath string
	Permalink    string
	Title        string

	// DateSource is the raw text of the date field, empty when absent.
	DateSource string
	Date       time.Time
	HasDate    bool

	// DateErr is set when the date field is present but does not parse.
	DateErr error

	// Err is set when the file could not be read or its front matter is
	// malformed. Other fields except the paths are empty.
	Err error
}

// Record converts d into an index row.
func (d Document) Record() index.Document {
	rec := index.Document{
		Path:       d.RelativePath,
		Permalink:  d.Permalink,
		Title:      d.Title,
		DateSource: d.DateSource,
		Date:       d.Date,
		HasDate:    d.HasDate,
	}
	if d.DateErr != nil {
		rec.DateError = d.DateErr.Error()
	}
	return rec
}

// WalkOptions controls which files are visited and how dates are read.
type WalkOptions struct {
	// DateField is the front-matter key holding the document date.
	DateField string

	// Ignore holds directory base names that are skipped entirely.
	Ignore map[string]struct{}
}

func (o WalkOptions) dateField() string {
	if o.DateField == "" {
		return "date"
	}
	return o.DateField
}

// Ignored reports whether relativePath lies under an ignored directory.
func (o WalkOptions) Ignored(relativePath string) bool {
	parts := strings.Split(paths.NormalizeRelPath(relativePath), "/")
	for _, part := range parts[:len(parts)-1] {
		if _, skip := o.Ignore[part]; skip {
			return true
		}
	}
	return false
}

// Walk visits every markdown file under root and calls fn for each. It
// skips ignored directories and files resolving outside root. fn errors
// stop the walk. Walk checks ctx between files.
func Walk(ctx context.Context, root string, opts WalkOptions, fn func(Document) error) error {
	field := opts.dateField()

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relativePath, _ := paths.RelPath(root, path)
		if err != nil {
			return fn(Document{Path: path, RelativePath: relativePath, Err: err})
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := opts.Ignore[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		if err := paths.ValidateWithinRoot(root, path); err != nil {
			if errors.Is(err, paths.ErrPathOutsideRoot) {
				return nil
			}
			return fn(Document{Path: path, RelativePath: relativePath, Err: err})
		}

		return fn(readDocument(path, relativePath, field))
	})
}

// ReadDocument processes the single markdown file at path, which must lie
// inside root.
func ReadDocument(root, path string, opts WalkOptions) Document {
	relativePath, _ := paths.RelPath(root, path)
	if err := paths.ValidateWithinRoot(root, path); err != nil {
		return Document{Path: path, RelativePath: relativePath, Err: err}
	}
	return readDocument(path, relativePath, opts.dateField())
}

func readDocument(path, relativePath, field string) Document {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{Path: path, RelativePath: relativePath, Err: err}
	}
	return processDocument(path, relativePath, string(content), field)
}

func processDocument(path, relativePath, content, field string) Document {
	doc := Document{
		Path:         path,
		RelativePath: relativePath,
		Permalink:    slugs.Permalink(relativePath),
	}

	fm, err := frontmatter.Parse(content)
	if err != nil {
		doc.Err = err
		return doc
	}

	body := content
	if fm != nil {
		body = fm.Body
		if title, ok := fm.Strings["title"]; ok {
			doc.Title = strings.TrimSpace(title)
		}

		source, present, err := fm.DateString(field)
		switch {
		case err != nil:
			doc.DateErr = err
		case present:
			doc.DateSource = source
			doc.Date, _, doc.DateErr = fm.Date(field)
			doc.HasDate = doc.DateErr == nil
		}
	}

	if doc.Title == "" {
		doc.Title = markdown.Title(body)
	}
	return doc
}

// Collect walks root and returns every document, including ones with
// errors, in walk order.
func Collect(ctx context.Context, root string, opts WalkOptions) ([]Document, error) {
	var docs []Document
	err := Walk(ctx, root, opts, func(doc Document) error {
		docs = append(docs, doc)
		return nil
	})
	return docs, err
}
