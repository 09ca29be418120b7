package portfolio

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

var dateLayouts = []string{
	"Jan 2006",
	"January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"2006-01",
	"01/2006",
}

// ParseApproxDate parses the free-form human date strings the portfolio
// uses ("Jun 2022 – Current", "2023", "Mar 2020"). Ranges contribute their
// first date; a bare four-digit year is January 1 of that year; anything
// unparsable is the epoch, so it sorts oldest.
func ParseApproxDate(value string) time.Time {
	first := value
	if idx := strings.IndexAny(value, "–-"); idx >= 0 {
		first = value[:idx]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		return time.Unix(0, 0).UTC()
	}

	if isYear(first) {
		year := 0
		for _, r := range first {
			year = year*10 + int(r-'0')
		}
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, first); err == nil {
			return parsed
		}
	}
	return time.Unix(0, 0).UTC()
}

func isYear(value string) bool {
	if len(value) != 4 {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// SortRecordsByDate orders records newest first by the given date field.
// The sort is stable: records with equal (or equally unparsable) dates keep
// their source order. The input slice is sorted in place.
func SortRecordsByDate(records []Record, field string) {
	if field == "" {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return ParseApproxDate(records[i].String(field)).After(ParseApproxDate(records[j].String(field)))
	})
}
