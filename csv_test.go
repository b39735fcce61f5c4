package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVNormalizesHeaders(t *testing.T) {
	rows, err := parseCSV(strings.NewReader(
		"Title, FULL NAME ,Chapter\nBro,John Doe,Central\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Bro", rows[0]["title"])
	assert.Equal(t, "John Doe", rows[0]["full name"])
	assert.Equal(t, "Central", rows[0]["chapter"])
}

func TestParseCSVSkipsEmptyAndRaggedRows(t *testing.T) {
	rows, err := parseCSV(strings.NewReader(
		"title,full name\nBro,John Doe\n,,extra,cells\n , \nSis,Jane Doe\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "John Doe", rows[0]["full name"])
	assert.Equal(t, "Jane Doe", rows[1]["full name"])
}

func TestParseCSVFailsWithoutHeader(t *testing.T) {
	_, err := parseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCellAmountToleratesBadInput(t *testing.T) {
	row := csvRow{
		"clean":    "150.50",
		"grouped":  "1,250.00",
		"garbage":  "N/A",
		"blank":    "",
		"negative": "-20",
	}

	assert.True(t, cellAmount(row, "clean").Equal(decimal.RequireFromString("150.50")))
	assert.True(t, cellAmount(row, "grouped").Equal(decimal.RequireFromString("1250.00")))
	assert.True(t, cellAmount(row, "garbage").IsZero())
	assert.True(t, cellAmount(row, "blank").IsZero())
	assert.True(t, cellAmount(row, "missing").IsZero())
	assert.True(t, cellAmount(row, "negative").Equal(decimal.NewFromInt(-20)))
}

func TestCellCountToleratesBadInput(t *testing.T) {
	row := csvRow{"n": " 42 ", "bad": "forty-two", "blank": ""}

	assert.Equal(t, 42, cellCount(row, "n"))
	assert.Zero(t, cellCount(row, "bad"))
	assert.Zero(t, cellCount(row, "blank"))
	assert.Zero(t, cellCount(row, "missing"))
}

func TestCellYesIsCaseInsensitive(t *testing.T) {
	assert.True(t, cellYes(csvRow{"k": "yes"}, "k"))
	assert.True(t, cellYes(csvRow{"k": " YES "}, "k"))
	assert.True(t, cellYes(csvRow{"k": "Yes"}, "k"))
	assert.False(t, cellYes(csvRow{"k": "no"}, "k"))
	assert.False(t, cellYes(csvRow{"k": ""}, "k"))
	assert.False(t, cellYes(csvRow{}, "k"))
}
