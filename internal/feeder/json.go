package feeder

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// loadJSONIDs reads a JSON array of strings or numbers. Numbers keep their
// literal text so identifiers such as 00042 or 1e3 are not reformatted.
func loadJSONIDs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open JSON file: %w", err)
	}
	defer file.Close()

	var raw []interface{}
	decoder := json.NewDecoder(file)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for i, value := range raw {
		switch v := value.(type) {
		case string:
			ids = append(ids, v)
		case json.Number:
			ids = append(ids, v.String())
		default:
			return nil, fmt.Errorf("element %d is %T, want string or number", i, value)
		}
	}
	return ids, nil
}
