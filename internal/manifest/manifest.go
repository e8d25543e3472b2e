// Package manifest records what a batch run produced in an append-only
// manifest.csv next to the generated documents.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FileName is the manifest file written into a batch output directory.
const FileName = "manifest.csv"

// Status is the outcome of one input row.
type Status string

const (
	StatusWritten  Status = "written"
	StatusNotReady Status = "not_ready"
	StatusFailed   Status = "failed"
)

// Entry records what happened to one input row.
type Entry struct {
	Timestamp time.Time
	Kind      string
	Line      int
	Reference string
	Status    Status
	File      string
	Detail    string
}

// Header is the CSV header for manifest.csv.
const Header = "timestamp,kind,line,reference,status,file,detail"

const (
	numFields    = 7
	colTimestamp = 0
	colKind      = 1
	colLine      = 2
	colReference = 3
	colStatus    = 4
	colFile      = 5
	colDetail    = 6
)

// MarshalEntry lays e out in Header column order.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colKind] = e.Kind
	row[colLine] = strconv.Itoa(e.Line)
	row[colReference] = e.Reference
	row[colStatus] = string(e.Status)
	row[colFile] = e.File
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry parses a row written by MarshalEntry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	line, err := strconv.Atoi(record[colLine])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing line %q: %w", record[colLine], err)
	}

	switch s := Status(record[colStatus]); s {
	case StatusWritten, StatusNotReady, StatusFailed:
	default:
		return Entry{}, fmt.Errorf("unknown status %q", s)
	}

	return Entry{
		Timestamp: ts,
		Kind:      record[colKind],
		Line:      line,
		Reference: record[colReference],
		Status:    Status(record[colStatus]),
		File:      record[colFile],
		Detail:    record[colDetail],
	}, nil
}

// Append adds one line per entry to the manifest in dir. A new manifest
// starts with the header row.
func Append(dir string, entries []Entry) error {
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat manifest: %w", err)
	}

	rows := make([][]string, 0, len(entries)+1)
	if info.Size() == 0 {
		rows = append(rows, strings.Split(Header, ","))
	}
	for _, e := range entries {
		rows = append(rows, MarshalEntry(e))
	}

	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Read loads every entry in the manifest in dir, oldest first. A directory
// without a manifest has no entries.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	return decode(f)
}

func decode(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest header: %w", err)
	}
	if strings.Join(header, ",") != Header {
		return nil, fmt.Errorf("unexpected manifest header %q", strings.Join(header, ","))
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading manifest: %w", err)
		}
		line, _ := cr.FieldPos(0)
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}
