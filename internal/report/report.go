// Package report renders the per-source run summary for the console.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/K37722/trumfscraper/internal/aggregator"
	"github.com/K37722/trumfscraper/pkg/utils"
)

const maxStatusWidth = 48

// Summary renders the source results as an aligned plain-text table. Store
// names contain non-ASCII characters, so column widths are display widths
// rather than byte counts.
func Summary(results []aggregator.SourceResult) string {
	table := [][]string{{"butikk", "tilbud", "status"}}

	total := 0

	for _, res := range results {
		status := "ok"
		if res.Err != nil {
			status = "hoppet over: " + utils.Truncate(res.Err.Error(), maxStatusWidth)
		}

		table = append(table, []string{res.Store, strconv.Itoa(res.Count), status})
		total += res.Count
	}

	table = append(table, []string{"totalt", strconv.Itoa(total), ""})

	return renderTable(table)
}

// renderTable pads every cell to its column's widest display width.
func renderTable(table [][]string) string {
	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)

	for _, row := range table {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	for rowIdx, row := range table {
		for i, cell := range row {
			padding := widths[i] - runewidth.StringWidth(cell)

			sb.WriteString(cell)

			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", padding+2))
			}
		}

		sb.WriteString("\n")

		if rowIdx == 0 {
			for i, width := range widths {
				sb.WriteString(strings.Repeat("-", width))

				if i < len(widths)-1 {
					sb.WriteString("  ")
				}
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Saved returns the final console line naming the output file.
func Saved(count int, path string) string {
	return fmt.Sprintf("Lagret %d tilbud i %s", count, path)
}
