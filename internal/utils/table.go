package utils

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// RenderTable draws rows as a box table. Missing or nil values print as NULL.
func RenderTable(w io.Writer, columns []string, rows []map[string]interface{}) {
	if len(columns) == 0 {
		return
	}

	colWidths := make(map[string]int, len(columns))
	for _, col := range columns {
		colWidths[col] = utf8.RuneCountInString(col)
	}

	for _, row := range rows {
		for _, col := range columns {
			if n := utf8.RuneCountInString(formatValue(row[col])); n > colWidths[col] {
				colWidths[col] = n
			}
		}
	}

	border := func(left, mid, right string) {
		fmt.Fprint(w, left)
		for i, col := range columns {
			fmt.Fprint(w, strings.Repeat("─", colWidths[col]+2))
			if i < len(columns)-1 {
				fmt.Fprint(w, mid)
			}
		}
		fmt.Fprintln(w, right)
	}
	line := func(value func(col string) string) {
		fmt.Fprint(w, "│")
		for _, col := range columns {
			v := value(col)
			fmt.Fprintf(w, " %s%s │", v, strings.Repeat(" ", colWidths[col]-utf8.RuneCountInString(v)))
		}
		fmt.Fprintln(w)
	}

	border("┌", "┬", "┐")
	line(func(col string) string { return col })
	border("├", "┼", "┤")
	for _, row := range rows {
		line(func(col string) string { return formatValue(row[col]) })
	}
	border("└", "┴", "┘")
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case *string:
		if v == nil {
			return "NULL"
		}
		return *v
	default:
		return fmt.Sprintf("%v", v)
	}
}
