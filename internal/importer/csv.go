package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadRows streams a comma-delimited export file into raw rows,
// skipping the first line when hasHeader is set. An unreadable path
// yields an error and no rows.
func ReadRows(path string, hasHeader bool) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Marketplace exports have ragged rows and stray quotes.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if hasHeader {
		if _, err := reader.Read(); err == io.EOF {
			return nil, nil
		} else if err != nil {
			return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
		}
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		rows = append(rows, record)
	}

	return rows, nil
}
