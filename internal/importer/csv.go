package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadRows parses one CSV source. Each row is an ancestry chain, most
// general segment first. Fields are trimmed and lowercased; empty fields
// and fully empty rows are dropped. Rows may have any number of fields.
func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing csv: %w", err)
		}

		var row []string
		for _, field := range record {
			field = strings.ToLower(strings.TrimSpace(field))
			if field == "" {
				continue
			}
			row = append(row, field)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
