package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxIDLength   = 128
	maxNameLength = 256
	maxDateLength = 64
)

// ValidateMemberID validates a member id for safety.
// Ids are used verbatim in junction and edge ids, so whitespace is rejected.
func ValidateMemberID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMember, "member id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidMember, "member id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidMember, "member id contains invalid characters: %q", id)
		}
	}
	return nil
}

// ValidateMemberName validates a display name.
//
// Validation rules:
//   - Name cannot be blank
//   - Maximum length of 256 characters
//   - No control characters (newlines break member cards)
func ValidateMemberName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidMember, "member name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidMember, "member name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMember, "member name contains invalid control characters")
		}
	}
	return nil
}

var yearRegex = regexp.MustCompile(`\d{4}`)

// ValidateDate validates a user-entered birth or death date. Empty means
// unknown. Any format containing a four-digit year is accepted ("1931",
// "1931-04-02", "c. 1931").
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	if len(date) > maxDateLength {
		return New(ErrCodeInvalidMember, "date too long (max %d characters)", maxDateLength)
	}
	if !yearRegex.MatchString(date) {
		return New(ErrCodeInvalidMember, "date %q has no four-digit year", date)
	}
	return nil
}

// ValidateURI validates a connection string against the allowed schemes.
func ValidateURI(raw string, schemes ...string) error {
	if raw == "" {
		return New(ErrCodeInvalidConfig, "URI cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(raw, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URI must use one of the schemes %s", strings.Join(schemes, ", "))
}
