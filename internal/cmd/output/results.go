package output

import (
	"fmt"
	"io"

	"github.com/agentstation/agentsgen/internal/cmd/table"
	"github.com/agentstation/agentsgen/pkg/reconcile"
)

// Results writes reconcile results. Table output lists one row per file and
// is followed by the unified diffs when showDiff is set; structured formats
// carry the diffs inline.
func Results(w io.Writer, format Format, root string, results reconcile.Results, showDiff bool) error {
	if format != FormatTable && format != "" {
		if results == nil {
			results = reconcile.Results{}
		}
		return NewFormatter(format).Format(w, results)
	}

	if err := NewFormatter(FormatTable).Format(w, table.ResultsToTableData(results, root)); err != nil {
		return err
	}
	if !showDiff {
		return nil
	}
	for _, r := range results {
		if r.Diff == "" {
			continue
		}
		if _, err := fmt.Fprint(w, r.Diff); err != nil {
			return err
		}
	}
	return nil
}
