package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// allFormats are the formatters written by the "all" pseudo-format.
var allFormats = []string{"console", "detailed-csv", "json"}

// LookupFormatter resolves a format name or alias, returning ErrUnsupportedFormat
// with the list of valid names when nothing matches.
func LookupFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// WriteReport formats the report and writes it to w.
func WriteReport(w io.Writer, report *domain.Report, format string) error {
	f, err := LookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the report to timestamped files in dir and returns their names.
// The "all" format writes the console, detailed CSV and JSON variants.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	formats := []string{format}
	if NormalizeFormatName(format) == "all" {
		formats = allFormats
	}

	var files []string
	for _, name := range formats {
		f, err := LookupFormatter(name)
		if err != nil {
			return files, err
		}
		file, err := WriteFormatted(f, report, dir)
		if err != nil {
			return files, fmt.Errorf("%s formatter: %w", f.Name(), err)
		}
		files = append(files, file)
	}
	return files, nil
}
