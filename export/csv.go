// Package export renders query results into tabular file formats.
//
// Two formats are supported: a minimal CSV dialect where every value is
// double-quoted, and styled xlsx workbooks. The generic handlers pair a
// repository with a row selector so feature code only declares columns.
package export

import (
	"strings"

	"github.com/spf13/cast"
)

// WriteCSV renders rows into CSV bytes. The header row comes first; every
// value is double-quoted and rows are joined with "\n". Values are written
// as-is: embedded quotes are not escaped, matching the consumers of this
// dialect.
func WriteCSV(rows [][]any, headers []string) []byte {
	var b strings.Builder

	cells := make([]string, 0, len(headers))
	for _, h := range headers {
		cells = append(cells, `"`+h+`"`)
	}
	b.WriteString(strings.Join(cells, ","))
	b.WriteString("\n")

	for _, row := range rows {
		cells = cells[:0]
		for _, cell := range row {
			cells = append(cells, `"`+cast.ToString(cell)+`"`)
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}

	return []byte(b.String())
}
