package nlparser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"paisahub/finassist/internal/models"
)

// ExtractDate finds a calendar date in text and returns it in ISO form
// (YYYY-MM-DD). Relative words like "yesterday" are resolved against now.
// Extraction never fails; when nothing looks like a date the current date is
// returned.
func ExtractDate(text string, now time.Time) string {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "yesterday") {
		return now.AddDate(0, 0, -1).Format(models.DateLayoutISO)
	}
	if strings.Contains(lower, "today") || strings.Contains(lower, "just now") {
		return now.Format(models.DateLayoutISO)
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dateparser.Past,
	}
	if parsed, err := dateparser.Parse(cfg, text); err == nil && !parsed.Time.IsZero() {
		return parsed.Time.Format(models.DateLayoutISO)
	}

	return now.Format(models.DateLayoutISO)
}
