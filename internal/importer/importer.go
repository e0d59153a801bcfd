// Package importer reads prop lists from CSV and Excel files and room
// blockouts from DXF drawings. CSV import auto-detects the delimiter and
// maps columns by case-insensitive header aliases.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"roomscatter/internal/model"
)

// ImportResult holds the props parsed from a file plus any per-row
// errors and warnings. A row that fails to parse is reported and
// skipped; it never aborts the whole import.
type ImportResult struct {
	Props    []model.Prop
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	Label    int
	Width    int
	Depth    int
	Quantity int
	Profile  int
}

// headerAliases maps canonical column names to accepted aliases (lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "prop", "prop name", "object", "item", "description", "desc"},
	"width":    {"width", "w", "x", "tiles wide", "size x"},
	"depth":    {"depth", "d", "z", "height", "tiles deep", "size z"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "copies"},
	"profile":  {"profile", "weight profile", "weights", "style", "mood"},
}

// DetectCSVDelimiter determines the most likely delimiter for the given
// CSV content. It tries comma, semicolon, tab, and pipe; the candidate
// producing the most consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		consistent := 0
		for _, row := range records {
			if len(row) == firstCols {
				consistent++
			}
		}

		weighted := consistent*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}

	return best
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It matches cells case-insensitively against known aliases. If no
// alias matches, a positional mapping (label, width, depth, quantity,
// profile) is returned with ok=false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Depth: -1, Quantity: -1, Profile: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "depth":
					if mapping.Depth == -1 {
						mapping.Depth = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "profile":
					if mapping.Profile == -1 {
						mapping.Profile = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Depth: 2, Quantity: 3, Profile: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a trimmed cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Prop from a row using the given column mapping.
// Returns the prop, an error message, and a warning message (each empty
// when not applicable).
func parseRow(row []string, mapping ColumnMapping, rowLabel string, propCount int) (model.Prop, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Prop %d", propCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Prop{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return model.Prop{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	depthStr := getCell(row, mapping.Depth)
	if depthStr == "" {
		return model.Prop{}, fmt.Sprintf("%s: Missing depth value", rowLabel), ""
	}
	depth, err := strconv.ParseFloat(depthStr, 64)
	if err != nil {
		return model.Prop{}, fmt.Sprintf("%s: Invalid depth '%s'", rowLabel, depthStr), ""
	}

	// Quantity defaults to 1 when the column is absent entirely, but a
	// present-and-empty cell is an error.
	qty := 1
	if mapping.Quantity >= 0 {
		qtyStr := getCell(row, mapping.Quantity)
		if qtyStr == "" {
			return model.Prop{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
		}
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return model.Prop{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
	}

	if width <= 0 || depth <= 0 || qty <= 0 {
		return model.Prop{}, fmt.Sprintf("%s: Width, depth, and quantity must be positive", rowLabel), ""
	}

	prop := model.NewProp(label, width, depth, qty)

	var warning string
	profileStr := getCell(row, mapping.Profile)
	if profileStr != "" {
		if _, ok := model.FindWeightProfile(profileStr); ok {
			prop.Profile = profileStr
		} else {
			warning = fmt.Sprintf("%s: Unknown profile '%s', using room default", rowLabel, profileStr)
		}
	}

	return prop, "", warning
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

// ImportCSV imports props from a CSV file, auto-detecting the delimiter
// and mapping columns by header names.
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

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports props from a CSV reader with a known
// delimiter. Useful when the content does not come from a file.
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

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports props from an Excel (.xlsx) file. It reads the
// first sheet and auto-detects the column mapping from headers.
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

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared parse loop for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// First row may be an unrecognized header: if the width column
		// is not numeric, skip it but keep the positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		prop, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Props))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Props = append(result.Props, prop)
	}

	return result
}
