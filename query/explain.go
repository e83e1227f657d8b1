package query

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Print writes a human-readable account of the explanation to w
func (e Explanation) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	switch {
	case e.Plan.Kind == GlobalText && e.Plan.Text == "":
		fmt.Fprintln(tw, "plan:\tall rows")
	case e.Plan.Kind == GlobalText:
		fmt.Fprintf(tw, "plan:\tfree text %q in any column\n", e.Plan.Text)
	default:
		fmt.Fprintf(tw, "plan:\t%d criteria\n", len(e.Plan.Criteria))
	}

	for _, r := range e.Resolutions {
		if r.Skipped() {
			fmt.Fprintf(tw, "  %s\t-> (no column, skipped)\n", r.Criterion)
			continue
		}
		mode := r.Tier.String()
		if r.Wildcard {
			mode += ", wildcard"
		}
		fmt.Fprintf(tw, "  %s\t-> %s\t(%s)\n", r.Criterion, r.Column, mode)
	}

	fmt.Fprintf(tw, "matched:\t%d of %d rows\n", e.Matched, e.Total)
	return tw.Flush()
}
