package pantry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pantry-finder/internal/models"
)

// parseCell parses a spreadsheet coordinate cell. Decimal commas from
// locale-formatted exports are normalized to dots.
func parseCell(val string) (float64, error) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.ParseFloat(val, 64)
}

// LoadXLSX reads a pantry dataset from an Excel workbook. When sheet is
// empty the first sheet of the workbook is used. Row semantics match
// LoadCSV: a header row is required and unusable rows are skipped.
func LoadXLSX(path, sheet string) ([]models.Pantry, []SkippedRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var (
		pantries []models.Pantry
		skipped  []SkippedRow
	)

	for i, row := range rows {
		if i == 0 {
			continue // Skip header
		}

		p, reason := parseXLSXRow(row, cols)
		if reason != "" {
			skipped = append(skipped, SkippedRow{Line: i + 1, Reason: reason})
			continue
		}

		pantries = append(pantries, p)
	}

	return pantries, skipped, nil
}

func parseXLSXRow(row []string, cols columns) (models.Pantry, string) {
	var p models.Pantry

	if cols.lat >= len(row) || cols.lng >= len(row) {
		return p, "missing coordinate cells"
	}

	lat, err := parseCell(row[cols.lat])
	if err != nil {
		return p, fmt.Sprintf("invalid latitude %q", row[cols.lat])
	}
	lng, err := parseCell(row[cols.lng])
	if err != nil {
		return p, fmt.Sprintf("invalid longitude %q", row[cols.lng])
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return p, fmt.Sprintf("coordinates out of range: %v,%v", lat, lng)
	}

	p.Name = DefaultName
	if cols.name >= 0 && cols.name < len(row) {
		if name := strings.TrimSpace(row[cols.name]); name != "" {
			p.Name = name
		}
	}
	if cols.address >= 0 && cols.address < len(row) {
		p.Address = strings.TrimSpace(row[cols.address])
	}
	p.Latitude = lat
	p.Longitude = lng

	return p, ""
}
