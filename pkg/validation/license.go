package validation

import (
	"errors"
	"unicode"
)

// A license number is LicensePrefixLength uppercase letters followed by digits,
// LicenseLength characters in total.
const (
	LicenseLength       = 8
	LicensePrefixLength = 3
)

// License rule failures, in the order they are checked.
var (
	ErrLicenseLength = errors.New("License number should consist of 8 characters")
	ErrLicensePrefix = errors.New("First 3 characters should be uppercase letters")
	ErrLicenseSuffix = errors.New("Last 5 characters should be digits")
)

// ValidateLicenseNumber checks length, then prefix, then suffix and reports
// only the first rule that fails. The value is returned unchanged on success.
func ValidateLicenseNumber(value string) (string, error) {
	runes := []rune(value)
	if len(runes) != LicenseLength {
		return "", ErrLicenseLength
	}
	if !isUpperAlpha(runes[:LicensePrefixLength]) {
		return "", ErrLicensePrefix
	}
	if !isDigits(runes[LicensePrefixLength:]) {
		return "", ErrLicenseSuffix
	}
	return value, nil
}

// isUpperAlpha holds when every rune is a letter, none is lower or title
// case and at least one is upper case.
func isUpperAlpha(runes []rune) bool {
	cased := false
	for _, r := range runes {
		if !unicode.IsLetter(r) || unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func isDigits(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
