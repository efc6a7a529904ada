package app

import (
	"fmt"
	"strings"
)

// BatchReport renders a markdown summary of one generation batch: a totals
// table per generated pyramid plus any skipped selections. All figures are
// in thousands.
func BatchReport(batch *Batch) string {
	var b strings.Builder

	b.WriteString("# Population Pyramid Batch Report\n\n")
	fmt.Fprintf(&b, "Generated **%d** pyramid(s), skipped **%d** selection(s).\n\n",
		batch.SuccessCount(), len(batch.Warnings))

	if len(batch.Results) > 0 {
		b.WriteString("| Country | Year | Male (k) | Female (k) | Total (k) |\n")
		b.WriteString("|---------|------|----------|------------|-----------|\n")
		for _, r := range batch.Results {
			fmt.Fprintf(&b, "| %s | %d | %.1f | %.1f | %.1f |\n",
				r.Selection.Country, r.Selection.Year,
				r.Table.TotalMale, r.Table.TotalFemale, r.Table.Total)
		}
		b.WriteString("\n")
	}

	if len(batch.Warnings) > 0 {
		b.WriteString("## Skipped selections\n\n")
		for _, w := range batch.Warnings {
			fmt.Fprintf(&b, "- %s\n", w.Message)
		}
	}

	return b.String()
}
