// Package csvexport flattens a reviewed extraction tree into CSV rows, one
// row per leaf field.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"

	"docreview/internal/extraction"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Section",
	"Entry",
	"Field",
	"Value",
	"Source Page",
}

// Writer wraps csv.Writer for exporting extraction trees as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteTree flattens the tree into rows and writes them. Sections and fields
// appear in tree order. List sections emit one row per field per entry, with
// the 1-based entry index in the second column.
func (w *Writer) WriteTree(t *extraction.Tree) error {
	for _, row := range Flatten(t) {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Flatten converts the tree into ordered rows matching the CSV columns. The
// XLSX exporter shares these rows so both formats stay in step.
func Flatten(t *extraction.Tree) [][]string {
	var rows [][]string
	if t == nil {
		return rows
	}

	for _, name := range t.SectionNames() {
		sec := t.Section(name)
		switch sec.Kind {
		case extraction.KindScalar:
			rows = append(rows, fieldRow(name, "", "", sec.Scalar))
		case extraction.KindRecord:
			rows = append(rows, recordRows(name, "", sec.Record)...)
		case extraction.KindList:
			for i, item := range sec.List {
				entry := strconv.Itoa(i + 1)
				switch {
				case item.Record != nil:
					rows = append(rows, recordRows(name, entry, item.Record)...)
				case item.Leaf != nil:
					rows = append(rows, fieldRow(name, entry, "", &extraction.FieldValue{Leaf: item.Leaf}))
				default:
					rows = append(rows, []string{name, entry, "", string(item.Raw), ""})
				}
			}
		}
	}
	return rows
}

func recordRows(section, entry string, rec *extraction.Record) [][]string {
	var rows [][]string
	if rec == nil {
		return rows
	}
	for _, field := range rec.FieldNames() {
		v, _ := rec.Field(field)
		rows = append(rows, fieldRow(section, entry, field, v))
	}
	return rows
}

func fieldRow(section, entry, field string, v *extraction.FieldValue) []string {
	row := []string{section, entry, field, "", ""}
	if v == nil {
		return row
	}
	if v.IsLeaf() {
		if v.Leaf.Value != nil {
			row[3] = *v.Leaf.Value
		}
		if v.Leaf.SourcePage != nil {
			row[4] = strconv.Itoa(*v.Leaf.SourcePage)
		}
		return row
	}
	row[3] = string(v.Raw)
	return row
}
