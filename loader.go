package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// overrideColumn is the column the source dataset stores full review text
// in. When present it wins over the configured column.
const overrideColumn = "a-size-base 3"

var ErrEmptyCSV = errors.New("csv file has no parseable rows")

type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found, available columns: %s", e.Column, strings.Join(e.Available, ", "))
}

// LoadReviews reads up to maxCount review rows from the CSV at path and
// renders them as a single text block for the prompt. The returned count is
// the number of rows taken from the head of the file, before blank and
// "nan" entries are filtered out of the rendered block; the prompt reports
// that pre-filter count to the model.
func LoadReviews(path string, maxCount int, columnName string) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", 0, fmt.Errorf("reviews file %s: %w", path, err)
		}
		return "", 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return "", 0, ErrEmptyCSV
	}
	if err != nil {
		return "", 0, fmt.Errorf("reading csv header: %w", err)
	}

	col := columnIndex(header, overrideColumn)
	if col < 0 {
		col = columnIndex(header, columnName)
	}
	if col < 0 {
		return "", 0, &ColumnNotFoundError{Column: columnName, Available: header}
	}

	var texts []string
	for len(texts) < maxCount {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, fmt.Errorf("reading csv row %d: %w", len(texts)+2, err)
		}
		text := ""
		if col < len(record) {
			text = record[col]
		}
		texts = append(texts, text)
	}

	// Filtering happens after truncation: skipped rows keep their position
	// in the numbering and still count toward the batch size.
	var blocks []string
	for i, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || trimmed == "nan" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("Recensione %d: %s", i+1, text))
	}

	slog.Info("reviews loaded", "path", path, "rows", len(texts), "rendered", len(blocks))
	return strings.Join(blocks, "\n\n"), len(texts), nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}
