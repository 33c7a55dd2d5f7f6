package sheet

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-sheet-importer/internal/models"
)

// Read classifies the raw bytes and reads the first worksheet into projected
// rows. It returns models.ErrUnrecognizedFormat for bytes that are neither
// container format, and models.ErrMalformedDocument for a container with no
// header row. Blank rows are skipped, never returned.
func Read(data []byte) (models.FileFormat, []Row, error) {
	format := DetectFormat(data)
	switch format {
	case models.FormatXLSX:
		rows, err := readXLSX(data)
		return format, rows, err
	case models.FormatXLS:
		rows, err := readXLS(data)
		return format, rows, err
	default:
		return models.FormatUnknown, nil, models.ErrUnrecognizedFormat
	}
}

// readXLSX streams cell values from the first sheet of a zip-container
// workbook. Date cells arrive formatted per their cell style; unformatted
// numeric date cells surface as Excel serial numbers, which the date
// normalizer converts.
func readXLSX(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", models.ErrMalformedDocument)
	}

	iter, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	defer iter.Close()

	if !iter.Next() {
		return nil, fmt.Errorf("%w: sheet %q has no header row", models.ErrMalformedDocument, sheetName)
	}
	labels, err := iter.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}

	columns, err := resolveHeader(labels)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for iter.Next() {
		cells, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
		}
		if isBlankRow(cells) {
			continue
		}
		rows = append(rows, projectRow(columns, cells))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}

	return rows, nil
}

// readXLS reads the first sheet of a legacy OLE2 workbook with random-access
// cell lookups.
func readXLS(data []byte) ([]Row, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", models.ErrMalformedDocument)
	}

	s := wb.GetSheet(0)
	if s == nil {
		return nil, fmt.Errorf("%w: first sheet is unreadable", models.ErrMalformedDocument)
	}

	header := s.Row(0)
	if header == nil {
		return nil, fmt.Errorf("%w: sheet has no header row", models.ErrMalformedDocument)
	}
	// Index labels by absolute column so positions line up with data rows
	// even when the header row does not start at column zero.
	labels := make([]string, header.LastCol())
	for c := header.FirstCol(); c < header.LastCol(); c++ {
		labels[c] = header.Col(c)
	}

	columns, err := resolveHeader(labels)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i := 1; i <= int(s.MaxRow); i++ {
		row := s.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		if isBlankRow(cells) {
			continue
		}
		rows = append(rows, projectRow(columns, cells))
	}

	return rows, nil
}
