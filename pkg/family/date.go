package family

import (
	"regexp"
	"strconv"
)

// UnknownYear is the sort year of members without an extractable birth year.
// It places them after everyone with a known date.
const UnknownYear = 9999

var yearPattern = regexp.MustCompile(`\d{4}`)

// BirthYear extracts the first four-digit year from a date string.
// It accepts any format that contains a year ("1931", "1931-04-02",
// "02/04/1931", "c. 1931").
func BirthYear(date string) (int, bool) {
	if date == "" {
		return 0, false
	}
	match := yearPattern.FindString(date)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// SortYear returns the year used to order siblings: the extracted year, or
// [UnknownYear] when the date is missing or has no four-digit year.
func SortYear(date string) int {
	if year, ok := BirthYear(date); ok {
		return year
	}
	return UnknownYear
}

// MalformedDate reports whether date is set but carries no extractable year.
func MalformedDate(date string) bool {
	if date == "" {
		return false
	}
	_, ok := BirthYear(date)
	return !ok
}
