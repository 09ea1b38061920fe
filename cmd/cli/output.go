package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStatements(w io.Writer, page statementList) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NO\tID\tBANK\tDATE\tDIFFERENCE")
	for _, s := range page.Statements {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			s.StatementID, s.ID, truncate(s.BankName, 24), s.ReconciliationDate, s.Difference)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d of %d statements\n", len(page.Statements), page.Total)
}

// truncate shortens s to at most max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
