package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// csvRow is one data row keyed by normalized header name.
type csvRow map[string]string

// parseCSV reads a delimited file with a header row. Header names are
// trimmed and lowercased so uploads survive case and spacing variance
// ("Full Name", "full name ", "FULL NAME" all land on "full name").
// Rows with a different cell count than the header are dropped rather
// than failing the batch.
func parseCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read data row: %w", err)
		}
		if len(record) != len(header) {
			continue
		}

		row := make(csvRow, len(header))
		empty := true
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			row[header[i]] = cell
			if cell != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// cellAmount coerces a currency cell. Empty or unparseable input is
// zero — a single bad cell never fails the batch.
func cellAmount(row csvRow, key string) decimal.Decimal {
	s := strings.TrimSpace(row[key])
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// cellCount coerces an integer cell with the same zero-on-bad-input
// rule as cellAmount.
func cellCount(row csvRow, key string) int {
	s := strings.TrimSpace(row[key])
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// cellYes normalizes "yes"/"no" style cells case-insensitively.
func cellYes(row csvRow, key string) bool {
	return strings.EqualFold(strings.TrimSpace(row[key]), "yes")
}
