package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/sitedates/internal/frontmatter"
	"github.com/aidanlsb/sitedates/internal/site"
	"github.com/aidanlsb/sitedates/internal/ui"
)

// documentIssue describes a document whose date or front matter is bad.
type documentIssue struct {
	Path       string `json:"path"`
	DateSource string `json:"date_source,omitempty"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func issueFor(doc site.Document) documentIssue {
	if doc.Err != nil {
		code := ErrFileReadError
		if errors.Is(doc.Err, frontmatter.ErrInvalid) {
			code = ErrFrontMatterError
		}
		return documentIssue{Path: doc.RelativePath, Code: code, Message: doc.Err.Error()}
	}
	return documentIssue{
		Path:       doc.RelativePath,
		DateSource: doc.DateSource,
		Code:       dateErrorCode(doc.DateErr),
		Message:    doc.DateErr.Error(),
	}
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate document dates",
	Long: `Walks every markdown document in the site and reports each one whose
date field fails to parse or whose front matter cannot be read. Nothing is
written. Exits non-zero if any document has a problem.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sitePath := getSitePath()
		b := &site.Builder{SiteDir: sitePath, Config: getConfig(), Log: newLogger()}

		docs, err := b.Check(commandContext(cmd))
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		var issues []documentIssue
		dated := 0
		for _, doc := range docs {
			switch {
			case doc.Err != nil || doc.DateErr != nil:
				issues = append(issues, issueFor(doc))
			case doc.HasDate:
				dated++
			}
		}

		if isJSONOutput() {
			data := map[string]interface{}{
				"documents": len(docs),
				"dated":     dated,
				"issues":    issues,
			}
			if len(issues) > 0 {
				outputJSON(Response{
					OK:   false,
					Data: data,
					Error: &ErrorInfo{
						Code:    ErrInvalidDate,
						Message: fmt.Sprintf("%d of %d documents have problems", len(issues), len(docs)),
					},
				})
				return errReported
			}
			outputSuccess(data, &Meta{Count: len(docs)})
			return nil
		}

		fmt.Printf("Checking site: %s\n", ui.FilePath(sitePath))
		for _, issue := range issues {
			fmt.Println(ui.Errorf("%s: %s", issue.Path, issue.Message))
		}

		if len(issues) > 0 {
			fmt.Printf("\n%s %s\n", ui.Error("Problems found"), ui.Count(len(issues), "document", "documents"))
			return errReported
		}
		fmt.Println(ui.Successf("%d documents, %d dated", len(docs), dated))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
