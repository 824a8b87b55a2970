package service

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"docreview/internal/csvexport"
	"docreview/internal/domain"
	"docreview/internal/extraction"
	"docreview/internal/review"
)

// ExportService renders a session's committed tree as a downloadable file.
type ExportService interface {
	ExportCSV(sess *review.Session) ([]byte, error)
	ExportXLSX(sess *review.Session) ([]byte, error)
}

type exportService struct{}

// NewExportService creates a new ExportService implementation.
func NewExportService() ExportService {
	return &exportService{}
}

// committedTree returns the session's committed tree. Exports always reflect
// saved state, never an edit in progress.
func committedTree(sess *review.Session) (*extraction.Tree, error) {
	tree := sess.Baseline()
	if tree == nil {
		return nil, domain.ErrNoResult
	}
	return tree, nil
}

func (s *exportService) ExportCSV(sess *review.Session) ([]byte, error) {
	tree, err := committedTree(sess)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteTree(tree); err != nil {
		return nil, fmt.Errorf("writing csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportXLSX(sess *review.Session) ([]byte, error) {
	tree, err := committedTree(sess)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Extraction"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{"Section", "Entry", "Field", "Value", "Source Page"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range csvexport.Flatten(tree) {
		for col, v := range r {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			// Keep source pages numeric so spreadsheets can sort them.
			if col == 4 && v != "" {
				if page, err := strconv.Atoi(v); err == nil {
					_ = f.SetCellValue(sheet, cell, page)
					continue
				}
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
