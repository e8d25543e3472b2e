// Package batch generates many documents at once from a spreadsheet of form
// rows, one document per row.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row keyed by its header. Line is the 1-based line
// (or sheet row) number, header included.
type Row struct {
	Line   int
	Fields map[string]string
}

// Reader converts a spreadsheet into rows.
type Reader interface {
	Read(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds readers keyed by file extension.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// ForPath returns the reader for path's extension.
func (r *Registry) ForPath(path string) (Reader, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	rd, ok := r.readers[ext]
	if !ok {
		return nil, fmt.Errorf("no reader for %q files", filepath.Ext(path))
	}
	return rd, nil
}

// DefaultRegistry returns a registry with the CSV and XLSX readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVReader{})
	r.Register(&XLSXReader{})
	return r
}

// CSVReader reads comma-separated rows with a header line.
type CSVReader struct{}

// Format implements Reader.
func (*CSVReader) Format() string { return "csv" }

// Read implements Reader. Blank lines are skipped by encoding/csv, so line
// numbers come from the reader's field positions.
func (*CSVReader) Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return toRows(records, lines)
}

// XLSXReader reads the first sheet of an Excel workbook.
type XLSXReader struct{}

// Format implements Reader.
func (*XLSXReader) Format() string { return "xlsx" }

// Read implements Reader.
func (*XLSXReader) Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	lines := make([]int, len(records))
	for i := range records {
		lines[i] = i + 1
	}
	return toRows(records, lines)
}

// toRows keys records by the header line; lines[i] is the source line of
// records[i]. Fully blank rows are skipped and empty cells are left out of
// Fields.
func toRows(records [][]string, lines []int) ([]Row, error) {
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
		if header[i] == "" {
			return nil, fmt.Errorf("header column %d is empty", i+1)
		}
	}

	var rows []Row
	for i, rec := range records[1:] {
		line := lines[i+1]
		if len(rec) > len(header) {
			return nil, fmt.Errorf("line %d: %d cells but only %d header columns", line, len(rec), len(header))
		}
		fields := make(map[string]string)
		for j, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				fields[header[j]] = cell
			}
		}
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, Row{Line: line, Fields: fields})
	}
	return rows, nil
}
