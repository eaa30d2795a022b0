package site

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/aidanlsb/sitedates/internal/config"
	"github.com/aidanlsb/sitedates/internal/index"
)

// BuildResult summarizes a build.
type BuildResult struct {
	Documents int        `json:"documents"`
	Dated     int        `json:"dated"`
	Invalid   []Document `json:"-"`
	Failed    []Document `json:"-"`
	Copied    CopyResult `json:"copied"`
}

// Builder runs builds for one site directory.
type Builder struct {
	SiteDir string
	Config  *config.Config
	Log     logrus.FieldLogger
}

func (b *Builder) walkOptions() WalkOptions {
	return WalkOptions{DateField: b.Config.DateField, Ignore: b.Config.IgnoredDirs()}
}

// Check walks the input tree without writing anything.
func (b *Builder) Check(ctx context.Context) ([]Document, error) {
	return Collect(ctx, b.Config.InputDir(b.SiteDir), b.walkOptions())
}

// Build copies passthrough entries into the output directory and replaces
// the index contents with the current documents. Documents with date or
// front-matter errors are indexed without a date and reported in the result.
func (b *Builder) Build(ctx context.Context, db *index.Database) (BuildResult, error) {
	var result BuildResult
	input := b.Config.InputDir(b.SiteDir)
	log := b.Log.WithField("site", b.SiteDir)

	copied, err := CopyPassthrough(ctx, input, b.Config.OutputDir(b.SiteDir), b.Config.Passthrough)
	if err != nil {
		return result, err
	}
	result.Copied = copied
	for _, missing := range copied.Missing {
		log.WithField("entry", missing).Warn("passthrough entry not found")
	}
	log.WithField("files", copied.Files).Debug("passthrough copied")

	var records []index.Document
	err = Walk(ctx, input, b.walkOptions(), func(doc Document) error {
		switch {
		case doc.Err != nil:
			result.Failed = append(result.Failed, doc)
			log.WithField("path", doc.RelativePath).WithError(doc.Err).Warn("skipping document")
			return nil
		case doc.DateErr != nil:
			result.Invalid = append(result.Invalid, doc)
			log.WithField("path", doc.RelativePath).WithError(doc.DateErr).Warn("invalid date")
		case doc.HasDate:
			result.Dated++
		}
		records = append(records, doc.Record())
		log.WithField("path", doc.RelativePath).Debug("indexed")
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walk %s: %w", input, err)
	}

	if err := db.Replace(ctx, records); err != nil {
		return result, err
	}
	result.Documents = len(records)
	log.WithField("documents", result.Documents).Info("index rebuilt")
	return result, nil
}
