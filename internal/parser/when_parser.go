package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseWhen parses a review time from the command line.
// Supported formats:
// - dd/mm/yyyy hh:mm (e.g., "15/12/2026 14:30")
// - dd/mm/yyyy (defaults to 10:00)
// - X hours (e.g., "3 hours", "1 hour")
// - X days (e.g., "2 days", "1 day")
func ParseWhen(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}

	if at, err := parseAbsolute(input, now); err == nil {
		return at, nil
	}
	if at, err := parseRelative(input, now); err == nil {
		return at, nil
	}

	return time.Time{}, fmt.Errorf("invalid time format, use: dd/mm/yyyy [hh:mm], X hours, or X days")
}

var absoluteRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:\s+(\d{1,2}):(\d{2}))?$`)

// parseAbsolute parses "dd/mm/yyyy" with an optional "hh:mm".
func parseAbsolute(input string, now time.Time) (time.Time, error) {
	matches := absoluteRegex.FindStringSubmatch(input)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	// Default review slot when no time is given.
	hour, minute := 10, 0
	if matches[4] != "" {
		hour, _ = strconv.Atoi(matches[4])
		minute, _ = strconv.Atoi(matches[5])
	}

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day")
	}

	at := time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location())
	// Rejects impossible dates like 31/02 that time.Date normalizes away.
	if at.Day() != day || at.Month() != time.Month(month) || at.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	if at.Before(now) {
		return time.Time{}, fmt.Errorf("review time is in the past")
	}
	return at, nil
}

var relativeRegex = regexp.MustCompile(`^(\d+)\s+(hour|hours|day|days)$`)

// parseRelative parses "X hours" and "X days" offsets from now.
func parseRelative(input string, now time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(strings.ToLower(input))
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 1 {
		return time.Time{}, fmt.Errorf("invalid amount")
	}

	switch matches[2] {
	case "hour", "hours":
		if amount > 24*90 {
			return time.Time{}, fmt.Errorf("hours must be at most %d", 24*90)
		}
		return now.Add(time.Duration(amount) * time.Hour), nil
	default: // day, days
		if amount > 90 {
			return time.Time{}, fmt.Errorf("days must be at most 90")
		}
		// Same review slot on the target day.
		target := now.AddDate(0, 0, amount)
		return time.Date(target.Year(), target.Month(), target.Day(), 10, 0, 0, 0, now.Location()), nil
	}
}

// FormatWhen formats a scheduled review time for display.
func FormatWhen(at *time.Time, now time.Time) string {
	if at == nil {
		return ""
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	daysDiff := int(day.Sub(today).Hours() / 24)

	stamp := at.Format("02/01/2006 15:04")
	switch {
	case daysDiff < 0:
		return fmt.Sprintf("overdue (%s)", stamp)
	case daysDiff == 0:
		return fmt.Sprintf("today %s", at.Format("15:04"))
	case daysDiff == 1:
		return fmt.Sprintf("tomorrow %s", at.Format("15:04"))
	default:
		return stamp
	}
}
