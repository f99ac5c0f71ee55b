// Package importer provides CSV and Excel import functionality for furniture
// catalogs, plus room outline import from DXF floor plans.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/furnish/internal/catalog"
	"github.com/piwi3910/furnish/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Specs    []model.FurnitureSpec
	Errors   []string
	Warnings []string
}

// Catalog validates the imported specs into a catalog.
func (r ImportResult) Catalog() (*catalog.Catalog, error) {
	return catalog.New(r.Specs...)
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID            int
	Name          int
	Category      int
	Width         int
	Depth         int
	Height        int
	Scale         int
	Zone          int
	Orientation   int
	WallDistance  int
	HeightOffset  int
	Essential     int
	BaseRotationZ int
}

// columnRoles lists every role in positional order. A file without a header
// row is read in this order.
var columnRoles = []string{
	"id", "name", "category", "width", "depth", "height", "scale", "zone",
	"orientation", "wall_distance", "height_offset", "essential", "base_rotation_z",
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":              {"id", "furniture id", "furniture_id", "sku", "key"},
	"name":            {"name", "label", "title", "description", "desc"},
	"category":        {"category", "type", "kind", "cat"},
	"width":           {"width", "w", "length", "x"},
	"depth":           {"depth", "d", "y"},
	"height":          {"height", "h", "z"},
	"scale":           {"scale", "import scale", "model scale"},
	"zone":            {"zone", "placement", "placement zone"},
	"orientation":     {"orientation", "rotation policy", "rotate"},
	"wall_distance":   {"wall_distance", "wall distance", "wall gap", "wall offset"},
	"height_offset":   {"height_offset", "height offset", "elevation", "mount height"},
	"essential":       {"essential", "required", "must have"},
	"base_rotation_z": {"base_rotation_z", "base rotation z", "rotation z", "rot z", "yaw offset"},
}

func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "id":
		return &m.ID
	case "name":
		return &m.Name
	case "category":
		return &m.Category
	case "width":
		return &m.Width
	case "depth":
		return &m.Depth
	case "height":
		return &m.Height
	case "scale":
		return &m.Scale
	case "zone":
		return &m.Zone
	case "orientation":
		return &m.Orientation
	case "wall_distance":
		return &m.WallDistance
	case "height_offset":
		return &m.HeightOffset
	case "essential":
		return &m.Essential
	case "base_rotation_z":
		return &m.BaseRotationZ
	}
	return nil
}

func unmappedColumns() ColumnMapping {
	m := ColumnMapping{}
	for _, role := range columnRoles {
		*m.slot(role) = -1
	}
	return m
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := unmappedColumns()

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := mapping.slot(role); *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		positional := ColumnMapping{}
		for i, role := range columnRoles {
			*positional.slot(role) = i
		}
		return positional, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCategory(s string) (model.Category, bool) {
	c := model.Category(strings.ReplaceAll(strings.ToLower(s), " ", "_"))
	if c.Valid() {
		return c, true
	}
	return model.CategoryOther, false
}

func parseZone(s string) (model.Zone, bool) {
	z := model.Zone(strings.ToLower(s))
	switch z {
	case "centre":
		return model.ZoneCenter, true
	case "any":
		return model.ZoneAnywhere, true
	}
	return z, z.Valid()
}

func parseOrientation(s string) (model.Orientation, bool) {
	switch strings.ToLower(strings.ReplaceAll(s, " ", "_")) {
	case "", "fixed", "none", "-":
		return model.OrientationFixed, true
	case "rotatable", "free", "any":
		return model.OrientationRotatable, true
	case "wall_aligned", "wall", "aligned":
		return model.OrientationWallAligned, true
	}
	return model.OrientationFixed, false
}

func parseEssential(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "", "no", "n", "-":
		return false, true
	case "yes", "y", "x":
		return true, true
	}
	b, err := strconv.ParseBool(s)
	return b, err == nil
}

// parseNumber reads an optional float column. An empty cell yields def.
func parseNumber(row []string, idx int, def float64, rowLabel, column string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return def, ""
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, s)
	}
	return v, ""
}

// parseRow extracts a FurnitureSpec from a row using the given column mapping.
// Returns the spec, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.FurnitureSpec, string, []string) {
	var warnings []string

	id := getCell(row, mapping.ID)
	if id == "" {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: Missing id value", rowLabel), nil
	}

	spec := model.FurnitureSpec{ID: id, Name: getCell(row, mapping.Name)}

	dims := []struct {
		idx  int
		name string
		dst  *float64
	}{
		{mapping.Width, "width", &spec.Footprint.Width},
		{mapping.Depth, "depth", &spec.Footprint.Depth},
		{mapping.Height, "height", &spec.Footprint.Height},
	}
	for _, d := range dims {
		if getCell(row, d.idx) == "" {
			return model.FurnitureSpec{}, fmt.Sprintf("%s: Missing %s value", rowLabel, d.name), nil
		}
		v, errMsg := parseNumber(row, d.idx, 0, rowLabel, d.name)
		if errMsg != "" {
			return model.FurnitureSpec{}, errMsg, nil
		}
		*d.dst = v
	}
	if spec.Footprint.Width <= 0 || spec.Footprint.Depth <= 0 || spec.Footprint.Height <= 0 {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: Width, depth, and height must be positive", rowLabel), nil
	}

	zoneStr := getCell(row, mapping.Zone)
	if zoneStr == "" {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: Missing zone value", rowLabel), nil
	}
	zone, ok := parseZone(zoneStr)
	if !ok {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: Unknown zone '%s'", rowLabel, zoneStr), nil
	}
	spec.Zone = zone

	catStr := getCell(row, mapping.Category)
	category, ok := parseCategory(catStr)
	if !ok && catStr != "" {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown category '%s', defaulting to other", rowLabel, catStr))
	}
	spec.Category = category

	orientStr := getCell(row, mapping.Orientation)
	orientation, ok := parseOrientation(orientStr)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown orientation '%s', defaulting to fixed", rowLabel, orientStr))
	}
	spec.Orientation = orientation

	var errMsg string
	if spec.Scale, errMsg = parseNumber(row, mapping.Scale, 1, rowLabel, "scale"); errMsg != "" {
		return model.FurnitureSpec{}, errMsg, nil
	}
	if spec.Scale <= 0 {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: Scale must be positive", rowLabel), nil
	}
	if spec.WallDistance, errMsg = parseNumber(row, mapping.WallDistance, 0, rowLabel, "wall distance"); errMsg != "" {
		return model.FurnitureSpec{}, errMsg, nil
	}
	if spec.WallDistance < 0 {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: Wall distance must not be negative", rowLabel), nil
	}
	if spec.HeightOffset, errMsg = parseNumber(row, mapping.HeightOffset, 0, rowLabel, "height offset"); errMsg != "" {
		return model.FurnitureSpec{}, errMsg, nil
	}
	if spec.BaseRotation.Z, errMsg = parseNumber(row, mapping.BaseRotationZ, 0, rowLabel, "base rotation"); errMsg != "" {
		return model.FurnitureSpec{}, errMsg, nil
	}

	essStr := getCell(row, mapping.Essential)
	essential, ok := parseEssential(essStr)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown essential flag '%s', defaulting to no", rowLabel, essStr))
	}
	spec.Essential = essential

	return spec, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a furniture catalog from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports a furniture catalog from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a furniture catalog from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into specs.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		for _, role := range []string{"id", "width", "depth", "height", "zone"} {
			if *mapping.slot(role) == -1 {
				missing = append(missing, role)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) > mapping.Width {
		// Non-numeric width in the first row: an unrecognized header
		if _, err := strconv.ParseFloat(getCell(rows[0], mapping.Width), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]string)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		spec, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if first, dup := seen[spec.ID]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate id '%s' (first on %s)", rowLabel, spec.ID, first))
			continue
		}
		seen[spec.ID] = rowLabel
		result.Warnings = append(result.Warnings, warnings...)
		result.Specs = append(result.Specs, spec)
	}

	return result
}
