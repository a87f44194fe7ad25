package categorization

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseRecords reads the uploaded spreadsheet into records. The first
// row is treated as a header; the description column is located by name
// and falls back to the first column. Rows with an empty description
// are skipped.
func ParseRecords(fileName string, r io.Reader) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		return parseXLSX(r)
	case ".csv":
		return parseCSV(r)
	default:
		return nil, ErrUnsupportedFile
	}
}

func parseXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrUnsupportedFile
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return recordsFromRows(rows)
}

func parseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, ErrUnsupportedFile
	}
	return recordsFromRows(rows)
}

func recordsFromRows(rows [][]string) ([]Record, error) {
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	col := descriptionColumn(rows[0])
	var out []Record
	for i, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		description := strings.TrimSpace(row[col])
		if description == "" {
			continue
		}
		out = append(out, Record{Line: i + 2, Description: description})
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

func descriptionColumn(header []string) int {
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "description", "short_description", "summary", "incident_description":
			return i
		}
	}
	return 0
}
