package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/sitedates/internal/frontmatter"
	"github.com/aidanlsb/sitedates/internal/ui"
)

const grammarMarkdown = "# Date grammar\n\n" +
	"Front-matter dates and `sdate parse` arguments accept two shapes.\n\n" +
	"## Dates\n\n" +
	"- `YYYY-MM-DD` or `YYYYMMDD`\n" +
	"- Six-digit signed years: `+002021-01-01`, `-000001-12-31`\n\n" +
	"## Date-times\n\n" +
	"A date, then `T`, `t` or a space, then a time:\n\n" +
	"- `HH`, `HH:MM`, `HH:MM:SS` (colons optional)\n" +
	"- Fractional seconds with `.` or `,`, up to 9 digits; " +
	"the first 3 become milliseconds, unscaled (`.1` is 1 ms)\n" +
	"- Optional offset: `Z`, `+HH`, `+HH:MM` or `+HHMM`\n\n" +
	"## Rejected\n\n" +
	"- Fractional hours or minutes (`10.5`, `10:30.5`)\n" +
	"- Months outside 01-12\n" +
	"- Days that do not exist in the month (`2021-02-29`)\n" +
	"- Week dates, ordinal dates, durations and named zones\n"

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Show the accepted date grammar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"markdown":              grammarMarkdown,
				"front_matter_language": frontmatter.Languages(),
				"date_field":            getConfig().DateField,
			}, nil)
			return nil
		}

		display := ui.NewDisplayContext(os.Stdout)
		if !display.IsTTY {
			fmt.Print(grammarMarkdown)
			return nil
		}
		rendered, err := ui.RenderMarkdown(grammarMarkdown, display.TermWidth)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grammarCmd)
}
