package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// isNA reports whether a cell is one of the markers decoded as null.
func isNA(s string) bool {
	switch s {
	case "", "NaN", "nan", "-NaN", "-nan", "NA", "N/A", "n/a", "#N/A", "#NA", "<NA>", "NULL", "null", "None":
		return true
	}
	return false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseCell(s string, kind Kind) Value {
	if isNA(s) {
		return Null()
	}
	if kind == Number {
		n, ok := parseNumber(s)
		if !ok {
			return Null()
		}
		return Num(n)
	}
	return Str(s)
}

// newCSVReader wraps r so that a leading UTF-8 byte order mark, as written by
// spreadsheet exports, does not end up in the first header name.
func newCSVReader(r io.Reader) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	return cr
}

// uniqueHeader renames repeated header names to name.1, name.2, ...
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	taken := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := h
		for n := 1; ; n++ {
			if _, dup := taken[name]; !dup {
				break
			}
			name = h + "." + strconv.Itoa(n)
		}
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}

// FromRecords builds a table from a header and string records, inferring
// column kinds: a column is Number when every non-null cell parses as a
// number, Text otherwise. Short records are padded with nulls.
func FromRecords(header []string, records [][]string) (*Table, error) {
	header = uniqueHeader(header)
	kinds := make([]Kind, len(header))
	for j := range header {
		kinds[j] = inferKind(records, j)
	}

	cols := make([]Column, len(header))
	for j, h := range header {
		cols[j] = Column{Name: h, Kind: kinds[j]}
	}
	t := New(cols...)
	t.rows = make([][]Value, 0, len(records))
	for line, rec := range records {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("record %d has %d fields, header has %d", line+1, len(rec), len(header))
		}
		row := make([]Value, len(header))
		for j := range header {
			if j < len(rec) {
				row[j] = parseCell(rec[j], kinds[j])
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func inferKind(records [][]string, j int) Kind {
	numeric := false
	for _, rec := range records {
		if j >= len(rec) || isNA(rec[j]) {
			continue
		}
		if _, ok := parseNumber(rec[j]); !ok {
			return Text
		}
		numeric = true
	}
	if numeric {
		return Number
	}
	return Text
}

// ReadCSV decodes a header-inclusive delimited table.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := newCSVReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return FromRecords(header, records)
}

// WriteCSV encodes t with a header row. Nulls are written as empty cells.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.cols))
	for _, row := range t.rows {
		for j, c := range t.cols {
			rec[j] = c.Format(row[j])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
