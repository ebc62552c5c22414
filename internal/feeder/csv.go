package feeder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// loadCSVIDs reads the first field of every record verbatim. There is no
// header row and records may carry any number of fields. Records whose first
// field is blank are skipped.
func loadCSVIDs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	// Strip a leading BOM so it does not end up in the first identifier.
	// Content without a BOM passes through untouched.
	src := transform.NewReader(file, unicode.BOMOverride(transform.Nop))

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var ids []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		if strings.TrimSpace(row[0]) == "" {
			continue
		}
		ids = append(ids, row[0])
	}
	return ids, nil
}
