package dataset

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

type parquetColumn struct {
	name     string
	repeated bool
	toString func(parquet.Value) string
}

// ReadParquet flattens a parquet file into a Frame. Repeated (list) columns are kept
// as lists in Frame.Lists; DATE and TIMESTAMP columns are rendered as ISO dates.
func ReadParquet(r io.ReaderAt, size int64) (*Frame, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("parquet: open: %w", err)
	}
	schema := f.Schema()

	var (
		cols   []parquetColumn
		header []string
		pos    = map[string]int{}
		colPos []int
		lists  = map[string][][]string{}
	)
	for _, path := range schema.Columns() {
		leaf, ok := schema.Lookup(path...)
		if !ok || len(path) == 0 {
			return nil, fmt.Errorf("parquet: unknown column %v", path)
		}
		name := path[0]
		col := parquetColumn{
			name:     name,
			repeated: leaf.MaxRepetitionLevel > 0,
			toString: valueFormatter(leaf.Node.Type().LogicalType()),
		}
		cols = append(cols, col)
		if _, seen := pos[name]; !seen {
			pos[name] = len(header)
			header = append(header, name)
		}
		colPos = append(colPos, pos[name])
		if col.repeated {
			lists[name] = nil
		}
	}

	var rows [][]string
	buf := make([]parquet.Row, 256)
	for _, rg := range f.RowGroups() {
		reader := rg.Rows()
		for {
			n, err := reader.ReadRows(buf)
			for _, row := range buf[:n] {
				cells, items := flattenRow(row, cols, colPos, len(header))
				rows = append(rows, cells)
				for name := range lists {
					lists[name] = append(lists[name], items[pos[name]])
				}
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				reader.Close()
				return nil, fmt.Errorf("parquet: read rows: %w", err)
			}
			if n == 0 {
				break
			}
		}
		reader.Close()
	}

	frame := NewFrame(header, rows)
	if len(lists) > 0 {
		frame.Lists = lists
	}
	return frame, nil
}

// flattenRow returns the scalar cells of row and, per header position, the items of
// its list columns. List cells also get a readable ", " joined text.
func flattenRow(row parquet.Row, cols []parquetColumn, colPos []int, width int) ([]string, [][]string) {
	cells := make([]string, width)
	lists := make([][]string, width)
	row.Range(func(i int, values []parquet.Value) bool {
		if i >= len(cols) {
			return false
		}
		col, p := cols[i], colPos[i]
		if col.repeated {
			if lists[p] == nil {
				lists[p] = []string{}
			}
			for _, v := range values {
				if v.IsNull() {
					continue
				}
				if item := strings.TrimSpace(col.toString(v)); item != "" {
					lists[p] = append(lists[p], item)
				}
			}
			cells[p] = strings.Join(lists[p], ", ")
			return true
		}
		if len(values) > 0 && !values[0].IsNull() {
			cells[p] = col.toString(values[0])
		}
		return true
	})
	return cells, lists
}

func valueFormatter(lt *format.LogicalType) func(parquet.Value) string {
	switch {
	case lt != nil && lt.Date != nil:
		return func(v parquet.Value) string {
			return time.Unix(0, 0).UTC().AddDate(0, 0, int(v.Int32())).Format("2006-01-02")
		}
	case lt != nil && lt.Timestamp != nil:
		unit := lt.Timestamp.Unit
		return func(v parquet.Value) string {
			n := v.Int64()
			var t time.Time
			switch {
			case unit.Millis != nil:
				t = time.UnixMilli(n)
			case unit.Micros != nil:
				t = time.UnixMicro(n)
			default:
				t = time.Unix(0, n)
			}
			return t.UTC().Format("2006-01-02")
		}
	}
	return func(v parquet.Value) string {
		switch v.Kind() {
		case parquet.Boolean:
			return strconv.FormatBool(v.Boolean())
		case parquet.Int32:
			return strconv.FormatInt(int64(v.Int32()), 10)
		case parquet.Int64:
			return strconv.FormatInt(v.Int64(), 10)
		case parquet.Float:
			return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
		case parquet.Double:
			return strconv.FormatFloat(v.Double(), 'f', -1, 64)
		case parquet.ByteArray, parquet.FixedLenByteArray:
			return string(v.ByteArray())
		}
		return v.String()
	}
}
