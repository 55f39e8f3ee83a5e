package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Frame is a raw table as read from a file: a header and string cells.
type Frame struct {
	Header []string
	Rows   [][]string
	// Lists holds list columns read as real lists (parquet), keyed by column and indexed by row.
	Lists map[string][][]string
	index map[string]int
}

// NewFrame builds a frame and indexes its header. Duplicate column names keep the first occurrence.
func NewFrame(header []string, rows [][]string) *Frame {
	f := &Frame{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		f.Header[i] = h
		if _, ok := f.index[h]; !ok {
			f.index[h] = i
		}
	}
	return f
}

// Has reports whether the frame carries the column.
func (f *Frame) Has(col string) bool {
	_, ok := f.index[col]
	return ok
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Value returns the cell of row i in column col; short rows yield "".
func (f *Frame) Value(i int, col string) string {
	j, ok := f.index[col]
	if !ok {
		return ""
	}
	row := f.Rows[i]
	if j >= len(row) {
		return ""
	}
	return row[j]
}

// List returns the cell of row i in column col as a list. Columns without a
// native list are parsed from their text.
func (f *Frame) List(i int, col string) []string {
	if lists, ok := f.Lists[col]; ok {
		if i < len(lists) && lists[i] != nil {
			return slices.Clone(lists[i])
		}
		return []string{}
	}
	return parseList(f.Value(i, col))
}

// First returns the first column name from candidates present in the frame.
func (f *Frame) First(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if f.Has(c) {
			return c, true
		}
	}
	return "", false
}

var lfsMarker = []byte("https://git-lfs.github.com/spec/v1")

// IsLFSPointer reports whether head (the first bytes of a file) is a Git LFS pointer instead of data.
func IsLFSPointer(head []byte) bool {
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.Contains(head, lfsMarker)
}

// ReadCSV parses a comma separated file with a header row. Ragged rows are tolerated.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv: empty file")
		}
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}
	return NewFrame(header, rows), nil
}
