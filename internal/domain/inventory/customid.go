package inventory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/inventoryhub/backend/internal/domain/shared"
)

// DefaultCustomIDFormat is used when an inventory has no explicit format
const DefaultCustomIDFormat = "{prefix}-{counter}"

// counterMinWidth is the minimum zero-padded width of the counter segment
const counterMinWidth = 3

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// GenerateCustomID renders a custom item ID from the inventory's template.
// The counter is zero-padded to at least three digits; wider counters are
// rendered as-is. {prefix} is substituted before {counter}.
func GenerateCustomID(prefix string, counter int64, format string) string {
	if format == "" {
		format = DefaultCustomIDFormat
	}

	rendered := strconv.FormatInt(counter, 10)
	if pad := counterMinWidth - len(rendered); pad > 0 {
		rendered = strings.Repeat("0", pad) + rendered
	}

	id := strings.ReplaceAll(format, "{prefix}", prefix)
	return strings.ReplaceAll(id, "{counter}", rendered)
}

// CounterFromLastID derives the next counter value from the most recently
// issued custom ID. The trailing decimal run of the ID wins over the
// configured start value; an ID without trailing digits falls back to start.
func CounterFromLastID(lastID string, start int64) int64 {
	if digits := trailingDigits.FindString(lastID); digits != "" {
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			return n + 1
		}
	}
	if start < 1 {
		return 1
	}
	return start
}

// ValidateCustomIDFormat checks that a format template can produce unique IDs
func ValidateCustomIDFormat(format string) error {
	if format == "" {
		return shared.NewDomainError("INVALID_CUSTOM_ID_FORMAT", "Custom ID format cannot be empty")
	}
	if !strings.Contains(format, "{counter}") {
		return shared.NewDomainError("INVALID_CUSTOM_ID_FORMAT", "Custom ID format must contain the {counter} placeholder")
	}
	if len(format) > 100 {
		return shared.NewDomainError("INVALID_CUSTOM_ID_FORMAT", "Custom ID format cannot exceed 100 characters")
	}
	return nil
}
