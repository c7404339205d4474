package ui

import (
	"fmt"
	"io"
	"strings"
)

// CompactTable writes a borderless table
func CompactTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
		for _, row := range rows {
			if i < len(row) && len([]rune(row[i])) > widths[i] {
				widths[i] = len([]rune(row[i]))
			}
		}
		widths[i] += 2
	}

	for i, h := range headers {
		fmt.Fprintf(w, "%-*s", widths[i], h)
		if i < len(headers)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)

	for i, width := range widths {
		fmt.Fprint(w, strings.Repeat("─", width))
		if i < len(widths)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i := range headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			fmt.Fprintf(w, "%-*s", widths[i], val)
			if i < len(headers)-1 {
				fmt.Fprint(w, "  ")
			}
		}
		fmt.Fprintln(w)
	}
}

// KeyValues writes aligned "key: value" lines
func KeyValues(w io.Writer, pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		fmt.Fprintf(w, "%-*s  %s\n", width+1, p[0]+":", p[1])
	}
}
