// Package loader reads delimited bank statements into untyped tables.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/budget-report/internal/fileutils"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/models"
	"fjacquet/budget-report/internal/parsererror"
)

const utf8BOM = "\uFEFF"

// Loader reads one statement file into a models.RawTable.
type Loader struct {
	delimiter rune
	logger    logging.Logger
}

// NewLoader creates a loader for the given field delimiter. A zero delimiter
// means ','.
func NewLoader(delimiter rune, logger logging.Logger) *Loader {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Loader{delimiter: delimiter, logger: logger}
}

// Load opens path, reads it and closes it before returning. Every failure is
// a *parsererror.LoadError.
func (l *Loader) Load(ctx context.Context, path string) (*models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := l.logger.WithField(logging.FieldFile, path)
	log.Info("Loading statement")

	if fileutils.DirectoryExists(path) {
		return nil, &parsererror.LoadError{FilePath: path, Reason: "path is a directory"}
	}

	file, err := os.Open(path) // #nosec G304 -- path is the user-selected statement
	if err != nil {
		reason := "file is unreadable"
		if errors.Is(err, os.ErrNotExist) {
			reason = "file does not exist"
		}
		return nil, &parsererror.LoadError{FilePath: path, Reason: reason, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close statement file")
		}
	}()

	table, err := l.Read(ctx, file, path)
	if err != nil {
		return nil, err
	}

	log.Info("Statement loaded",
		logging.F(logging.FieldCount, table.Len()),
		logging.F(logging.FieldColumn, strings.Join(table.Header, "|")))
	return table, nil
}

// Read parses an already-open stream. source names the stream in errors.
func (l *Loader) Read(ctx context.Context, r io.Reader, source string) (*models.RawTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &parsererror.LoadError{FilePath: source, Reason: "file has no header row"}
	}
	if err != nil {
		return nil, &parsererror.LoadError{FilePath: source, Reason: "malformed header", Err: err}
	}

	columns, keep := dedupeHeader(header)
	if len(columns) == 0 {
		return nil, &parsererror.LoadError{FilePath: source, Reason: "file has no header row"}
	}
	if len(columns) < len(header) {
		l.logger.Debug("Dropped duplicate columns",
			logging.F(logging.FieldFile, source),
			logging.F(logging.FieldCount, len(header)-len(columns)))
	}

	table := &models.RawTable{Source: source, Header: columns}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &parsererror.LoadError{FilePath: source, Reason: "malformed record", Err: err}
		}
		line, _ := reader.FieldPos(0)
		table.Records = append(table.Records, models.RawRecord{
			Line:   line,
			Values: project(record, keep, len(columns)),
		})
	}

	if table.Len() == 0 {
		return nil, &parsererror.LoadError{FilePath: source, Reason: "no data rows"}
	}
	return table, nil
}

// dedupeHeader trims header cells, strips a leading BOM and keeps only the
// first occurrence of each name. keep holds the source index of every kept
// column.
func dedupeHeader(header []string) ([]string, []int) {
	seen := make(map[string]bool, len(header))
	columns := make([]string, 0, len(header))
	keep := make([]int, 0, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if seen[h] {
			continue
		}
		seen[h] = true
		columns = append(columns, h)
		keep = append(keep, i)
	}
	if len(columns) == 1 && columns[0] == "" {
		return nil, nil
	}
	return columns, keep
}

// project picks the kept columns out of record, padding short rows with
// empty cells.
func project(record []string, keep []int, width int) []string {
	values := make([]string, width)
	for i, src := range keep {
		if src < len(record) {
			values[i] = record[src]
		}
	}
	return values
}

// ParseDelimiter turns a configured delimiter string into a rune. "\t" and
// "tab" select a tab.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case `\t`, "tab", "\t":
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	if runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' {
		return 0, fmt.Errorf("delimiter %q is not allowed", s)
	}
	return runes[0], nil
}
