// Package pantry loads pantry datasets from CSV and XLSX files.
package pantry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pantry-finder/internal/models"
)

// DefaultName is used for rows without a pantry name
const DefaultName = "Unnamed"

// SkippedRow records a data row that was dropped during loading
type SkippedRow struct {
	Line   int
	Reason string
}

// columns holds the resolved header indices of a dataset
type columns struct {
	name    int
	address int
	lat     int
	lng     int
}

// resolveColumns matches header names to column indices.
// Latitude and longitude columns are required; name and address are optional.
func resolveColumns(header []string) (columns, error) {
	cols := columns{name: -1, address: -1, lat: -1, lng: -1}

	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(col))
		switch {
		case col == "name" || col == "pantry_name":
			cols.name = i
		case col == "address" || col == "street_address":
			cols.address = i
		case col == "lat" || col == "latitude":
			cols.lat = i
		case col == "lon" || col == "lng" || col == "long" || col == "longitude":
			cols.lng = i
		}
	}

	if cols.lat == -1 || cols.lng == -1 {
		return cols, fmt.Errorf("header is missing lat/lon columns: %v", header)
	}

	return cols, nil
}

// parseRecord converts one data row into a Pantry. The second return value
// carries the skip reason when the row cannot be used.
func parseRecord(record []string, cols columns) (models.Pantry, string) {
	var p models.Pantry

	if cols.lat >= len(record) || cols.lng >= len(record) {
		return p, "missing coordinate fields"
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[cols.lat]), 64)
	if err != nil {
		return p, fmt.Sprintf("invalid latitude %q", record[cols.lat])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(record[cols.lng]), 64)
	if err != nil {
		return p, fmt.Sprintf("invalid longitude %q", record[cols.lng])
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return p, fmt.Sprintf("coordinates out of range: %v,%v", lat, lng)
	}

	p.Name = DefaultName
	if cols.name >= 0 && cols.name < len(record) {
		if name := strings.TrimSpace(record[cols.name]); name != "" {
			p.Name = name
		}
	}
	if cols.address >= 0 && cols.address < len(record) {
		p.Address = strings.TrimSpace(record[cols.address])
	}
	p.Latitude = lat
	p.Longitude = lng

	return p, ""
}

// LoadCSV reads a pantry dataset from a CSV file. Rows that fail to parse
// are returned as SkippedRow values rather than aborting the load; a missing
// file is an error the caller can test with errors.Is(err, fs.ErrNotExist).
func LoadCSV(path string) ([]models.Pantry, []SkippedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening pantry data: %w", err)
	}
	defer f.Close()

	return readCSV(f)
}

func readCSV(r io.Reader) ([]models.Pantry, []SkippedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, nil, err
	}

	var (
		pantries []models.Pantry
		skipped  []SkippedRow
	)

	// Read data rows
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			skipped = append(skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}

		p, reason := parseRecord(record, cols)
		if reason != "" {
			skipped = append(skipped, SkippedRow{Line: line, Reason: reason})
			continue
		}

		pantries = append(pantries, p)
	}

	return pantries, skipped, nil
}
