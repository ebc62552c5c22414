package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/torosent/fhirstress/internal/feeder"
)

var knownErrors = []struct {
	target error
	label  string
}{
	{feeder.ErrEmptySupply, "Empty supply"},
	{feeder.ErrSourceUnavailable, "Source unavailable"},
	{context.DeadlineExceeded, "Context deadline exceeded"},
	{context.Canceled, "Context canceled"},
}

// ErrorLabel returns a short human-readable bucket name for err.
func ErrorLabel(err error) string {
	if err == nil {
		return "Unknown error"
	}
	for _, known := range knownErrors {
		if errors.Is(err, known.target) {
			return known.label
		}
	}
	return FriendlyErrorName(fmt.Sprintf("%T", err))
}

// FriendlyErrorName turns a Go type name such as "*fs.PathError" into
// "Path Error (fs)".
func FriendlyErrorName(typeName string) string {
	cleaned := strings.TrimPrefix(strings.TrimSpace(typeName), "*")
	if cleaned == "" {
		return "Unknown error"
	}
	if idx := strings.LastIndex(cleaned, "/"); idx != -1 {
		cleaned = cleaned[idx+1:]
	}

	pkg, name := "", cleaned
	if idx := strings.Index(name, "."); idx != -1 {
		pkg, name = name[:idx], name[idx+1:]
	}

	pretty := splitCamel(name)
	if pkg != "" && pkg != "main" {
		return fmt.Sprintf("%s (%s)", pretty, pkg)
	}
	return pretty
}

// splitCamel inserts spaces at lower-to-upper transitions and capitalizes the
// first letter: "wrapError" becomes "Wrap Error".
func splitCamel(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
