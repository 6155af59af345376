package export

import (
	"bufio"
	"io"
	"strings"

	"quote-crawler/pkg/models"
)

type CSVExporter struct{}

func (CSVExporter) Name() string     { return "csv" }
func (CSVExporter) Filename() string { return "quotes.csv" }

// Export writes the header row then one row per quote. Every data field is
// quoted, rows are separated by "\n" and the last row has no line break.
func (CSVExporter) Export(w io.Writer, quotes []models.Quote) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(strings.Join(models.RowHeaders, ","))
	bw.WriteByte('\n')

	for i, row := range models.Rows(quotes) {
		if i > 0 {
			bw.WriteByte('\n')
		}
		for j, field := range row.Fields() {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quoteField(field))
		}
	}
	return bw.Flush()
}

func quoteField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
