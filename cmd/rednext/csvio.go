package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/limansky/rednext/internal/tabular"
)

// readCSVRows tokenizes a CSV file into named rows. The first record is
// the header; cells are matched to schema fields by header name, not by
// position.
func readCSVRows(path string) ([]tabular.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s has no header row", path)
	}

	header := records[0]
	rows := make([]tabular.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(tabular.Row, len(record))
		for i, cell := range record {
			row[i] = tabular.RowField{Name: header[i], Value: cell}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// writeCSVRows serializes rows with a header line and writes the file
// atomically, so a failed export never leaves a truncated file behind.
func writeCSVRows(path string, header []string, rows []tabular.Row) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = cell.Value
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to serialize CSV: %w", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	return nil
}
