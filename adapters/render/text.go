// Package render produces the fixed console layout for summary reports.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"goqval/domain/qvalue"
)

// Text renders a summary report in the fixed console layout:
//
//	Call: <original call description>
//
//	pi0:	<formatted pi0>
//
//	Cumulative number of significant calls:
//
//	          <t1> <t2> ...
//	p-value    ...
//	q-value    ...
//	local FDR  ...
//
// Column headers are the threshold values prefixed with "<"; rows keep the
// fixed p-value, q-value, local FDR order. A report with zero thresholds
// renders the frame with label-only rows.
func Text(report *qvalue.SummaryReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Call: %s\n", report.Call)
	b.WriteString("\n")
	fmt.Fprintf(&b, "pi0:\t%s\n", report.FormattedPi0)
	b.WriteString("\n")
	b.WriteString("Cumulative number of significant calls:\n")
	b.WriteString("\n")
	writeTable(&b, &report.Table)

	return b.String()
}

// writeTable emits the count table with right-aligned columns under
// "<"-prefixed threshold headers.
func writeTable(b *strings.Builder, table *qvalue.ThresholdTable) {
	labels := qvalue.RowLabels()

	labelWidth := 0
	for _, label := range labels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}

	headers := make([]string, len(table.Thresholds))
	widths := make([]int, len(table.Thresholds))
	for i, t := range table.Thresholds {
		headers[i] = "<" + strconv.FormatFloat(t, 'g', -1, 64)
		widths[i] = len(headers[i])
	}
	for _, label := range labels {
		for i, count := range table.Row(label) {
			if w := len(strconv.Itoa(count)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	fmt.Fprintf(b, "%-*s", labelWidth, "")
	for i, header := range headers {
		fmt.Fprintf(b, " %*s", widths[i], header)
	}
	b.WriteString("\n")

	for _, label := range labels {
		fmt.Fprintf(b, "%-*s", labelWidth, label)
		for i, count := range table.Row(label) {
			fmt.Fprintf(b, " %*d", widths[i], count)
		}
		b.WriteString("\n")
	}
}
