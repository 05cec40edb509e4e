package appraisal

import (
	"strconv"
	"strings"
	"time"
)

// isBlank reports whether a display value is empty after trimming.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// parseMoney parses formatted currency strings ("$1,234.50", "1234") into
// a float. Returns false for blank or non-numeric input.
func parseMoney(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parsePercent strips a trailing % and parses the remainder; blank parses
// as 0 with ok=true, matching how land-use percentages are summed.
func parsePercent(s string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if cleaned == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseLeadingNumber parses the leading numeric token of a value like
// "0.52 miles NW" or "7,500 sf".
func parseLeadingNumber(s string) (float64, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return 0, false
	}
	return parseMoney(fields[0])
}

var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/06",
}

// parseDate tries the date formats that show up in extracted reports.
func parseDate(s string) (time.Time, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseYear accepts a bare 4-digit year or a full date.
func parseYear(s string) (int, bool) {
	cleaned := strings.TrimSpace(s)
	if y, err := strconv.Atoi(cleaned); err == nil && y >= 1600 && y <= 3000 {
		return y, true
	}
	if t, ok := parseDate(cleaned); ok {
		return t.Year(), true
	}
	return 0, false
}

// currentYear is the wall-clock year, the fallback when a document
// carries no usable effective date.
func currentYear() int {
	return time.Now().Year()
}

// answerOf extracts the leading yes/no choice from a combined
// answer-plus-comment value, lower-cased: "Yes - public water" → "yes".
func answerOf(s string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,;:-")
}

// commentAfterAnswer returns whatever follows the leading yes/no token.
func commentAfterAnswer(s string) string {
	trimmed := strings.TrimSpace(s)
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return ""
	}
	return strings.TrimLeft(strings.TrimSpace(trimmed[len(fields[0]):]), ".,;:- ")
}

// containsFold reports a case-insensitive substring match.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// oneOfFold reports case-insensitive membership.
func oneOfFold(s string, options []string) bool {
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(s), o) {
			return true
		}
	}
	return false
}
