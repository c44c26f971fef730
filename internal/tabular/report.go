package tabular

import (
	"fmt"
	"strings"
)

// Report aggregates the per-row outcomes of one import batch.
type Report struct {
	Imported int
	Failed   []RowResult
}

// Summarize folds import results into a Report.
func Summarize(results []RowResult) Report {
	var r Report
	for _, res := range results {
		if res.Err != nil {
			r.Failed = append(r.Failed, res)
		} else {
			r.Imported++
		}
	}
	return r
}

// String renders the report in the form
// "12 imported, 2 failed: row 5 missing required field(s) x; row 9 field "y": invalid integer "z"".
func (r Report) String() string {
	if len(r.Failed) == 0 {
		return fmt.Sprintf("%d imported", r.Imported)
	}

	details := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		msg := strings.TrimPrefix(f.Err.Error(), "schema mismatch: ")
		details[i] = fmt.Sprintf("row %d %s", f.Row, msg)
	}

	return fmt.Sprintf("%d imported, %d failed: %s",
		r.Imported, len(r.Failed), strings.Join(details, "; "))
}
