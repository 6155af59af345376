// Package export writes the accumulated quotes to files.
//
// Each Exporter renders one artifact and shares no state with the others:
//
//	JSONExporter  quotes.json  pretty-printed array of {quote, author, tags}
//	CSVExporter   quotes.csv   header row plus one fully quoted row per record
//	XLSXExporter  quotes.xlsx  single "Quotes" worksheet
//
// WriteAll runs a set of exporters against an output directory. A failing
// exporter does not prevent the rest from writing.
package export
