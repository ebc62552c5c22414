package feeder

import (
	"strings"
)

// IDField is the placeholder name bound to the dispensed identifier.
const IDField = "bene_id"

// SubstitutePlaceholders replaces all occurrences of {{field_name}} in the template
// with the corresponding value from the record.
// If a placeholder's field is not found in the record, it is left unchanged.
func SubstitutePlaceholders(template string, record Record) string {
	result := template
	for key, value := range record {
		placeholder := "{{" + key + "}}"
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// FormatID expands {{bene_id}} in template with id. An empty template yields id.
func FormatID(template, id string) string {
	if template == "" {
		return id
	}
	return SubstitutePlaceholders(template, Record{IDField: id})
}
