package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadCSV loads an uploaded file into a TableSample. Files exported from
// European spreadsheet locales often use semicolons, so when the header
// parses as a single semicolon-riddled cell the file is re-read with a
// semicolon delimiter.
func ReadCSV(path string) (*TableSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := newCSVReader(f, ',')
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	if len(headers) == 1 && strings.Contains(headers[0], ";") {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind CSV file: %w", err)
		}
		reader = newCSVReader(f, ';')
		headers, err = reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV header: %w", err)
		}
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows rather than failing the whole file.
			continue
		}
		rows = append(rows, record)
	}

	return &TableSample{
		Name:    filepath.Base(path),
		Columns: headers,
		Rows:    rows,
	}, nil
}

func newCSVReader(f *os.File, delimiter rune) *csv.Reader {
	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader
}
