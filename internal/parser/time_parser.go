package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseTimeArg parses the time arguments accepted by CLI flags
// Supported formats:
// - RFC3339 (e.g., "2024-03-18T10:00:00Z")
// - dd/mm/yyyy (e.g., "18/03/2024", midnight local time)
// - X days/hours/weeks ago (e.g., "7 days", "24 hours")
// - "today", "yesterday", "now"
func ParseTimeArg(input string) (*time.Time, error) {
	if input == "" {
		return nil, nil
	}

	input = strings.TrimSpace(input)

	switch strings.ToLower(input) {
	case "now":
		now := time.Now()
		return &now, nil
	case "today":
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return &start, nil
	case "yesterday":
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
		return &start, nil
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return &t, nil
	}

	if t, err := parseDateFormat(input); err == nil {
		return t, nil
	}

	if t, err := parseRelativeTime(input); err == nil {
		return t, nil
	}

	return nil, fmt.Errorf("invalid time format. Use: RFC3339, dd/mm/yyyy, X days, X hours, or X weeks")
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string) (*time.Time, error) {
	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	matches := dateRegex.FindStringSubmatch(input)

	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid day")
	}

	month, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil, fmt.Errorf("invalid month")
	}

	year, err := strconv.Atoi(matches[3])
	if err != nil {
		return nil, fmt.Errorf("invalid year")
	}

	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &date, nil
}

// parseRelativeTime parses "X days" style inputs as offsets into the past
func parseRelativeTime(input string) (*time.Time, error) {
	input = strings.ToLower(input)

	relativeRegex := regexp.MustCompile(`^(\d+)\s*(hour|hours|day|days|week|weeks)(\s+ago)?$`)
	matches := relativeRegex.FindStringSubmatch(input)

	if len(matches) < 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}
	if amount < 1 {
		return nil, fmt.Errorf("amount must be positive")
	}

	now := time.Now()

	switch matches[2] {
	case "hour", "hours":
		t := now.Add(-time.Duration(amount) * time.Hour)
		return &t, nil
	case "day", "days":
		t := now.AddDate(0, 0, -amount)
		return &t, nil
	case "week", "weeks":
		t := now.AddDate(0, 0, -7*amount)
		return &t, nil
	}

	return nil, fmt.Errorf("invalid relative time format")
}
