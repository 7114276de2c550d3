package convert

import (
	"fmt"
	"strings"
)

// exportLabels returns the input/output labels used in the export block and
// the suggested download filename for a direction.
func exportLabels(dir Direction) (inLabel, outLabel, filename string) {
	if dir == DirectionReverse {
		return "Grid", "WGS", "hkgrid_to_wgs84_results.txt"
	}
	return "WGS", "Grid", "wgs84_to_hkgrid_results.txt"
}

// copyText joins the bare result values, one per line, for clipboard copy.
// Failed rows contribute their error text so positions still line up with
// the input.
func copyText(rows []Row) string {
	outputs := make([]string, len(rows))
	for i, row := range rows {
		outputs[i] = row.Output
	}
	return strings.Join(outputs, "\n")
}

// downloadText renders the numbered plain-text export block, one entry per
// input line:
//
//	(1)
//	WGS: 22.2759, 114.1455
//	Grid: 50Q-KK 195835
func downloadText(rows []Row, inLabel, outLabel string) string {
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "(%d)\n%s: %s\n%s: %s\n", row.Index, inLabel, row.Input, outLabel, row.Output)
	}
	return b.String()
}
