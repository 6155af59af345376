package export

import (
	"bytes"
	"encoding/json"
	"io"

	"quote-crawler/pkg/models"
)

type JSONExporter struct{}

func (JSONExporter) Name() string     { return "json" }
func (JSONExporter) Filename() string { return "quotes.json" }

// Export writes a 2-space indented array with no trailing newline. Characters
// such as <, & and the U+2028/U+2029 separators are written as-is.
func (JSONExporter) Export(w io.Writer, quotes []models.Quote) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(models.Rows(quotes)); err != nil {
		return err
	}

	out := unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	_, err := w.Write(out)
	return err
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always emits back into raw characters. Escapes are consumed in pairs so an
// escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if seq := b[i:]; len(seq) >= 6 && bytes.HasPrefix(seq, []byte(`\u202`)) && (seq[5] == '8' || seq[5] == '9') {
			if seq[5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}
