package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"quote-crawler/pkg/models"
)

type Exporter interface {
	Name() string
	Filename() string
	Export(w io.Writer, quotes []models.Quote) error
}

// ForFormats maps format names ("json", "csv", "xlsx") to exporters, keeping order.
func ForFormats(formats []string) ([]Exporter, error) {
	exporters := make([]Exporter, 0, len(formats))
	for _, f := range formats {
		switch f {
		case "json":
			exporters = append(exporters, JSONExporter{})
		case "csv":
			exporters = append(exporters, CSVExporter{})
		case "xlsx":
			exporters = append(exporters, XLSXExporter{})
		default:
			return nil, fmt.Errorf("unknown export format %q", f)
		}
	}
	return exporters, nil
}

// Writer places export artifacts in a directory.
type Writer struct {
	Dir string
	Log logrus.FieldLogger
}

func NewWriter(dir string, log logrus.FieldLogger) *Writer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Writer{Dir: dir, Log: log}
}

// WriteAll runs every exporter and returns the paths written. Failures are
// joined; a failed artifact is removed rather than left half written.
func (w *Writer) WriteAll(quotes []models.Quote, exporters ...Exporter) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	var errs []error
	for _, exp := range exporters {
		path := filepath.Join(w.Dir, exp.Filename())
		if err := writeFile(path, exp, quotes); err != nil {
			w.Log.WithError(err).WithField("exporter", exp.Name()).Error("Export failed")
			errs = append(errs, fmt.Errorf("%s export: %w", exp.Name(), err))
			continue
		}
		w.Log.WithFields(logrus.Fields{
			"exporter": exp.Name(),
			"path":     path,
			"records":  len(quotes),
		}).Info("Wrote export")
		written = append(written, path)
	}
	return written, errors.Join(errs...)
}

func writeFile(path string, exp Exporter, quotes []models.Quote) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return exp.Export(file, quotes)
}
