package validation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MsgRequired = "This field is required."

	MaxNameLength     = 255
	MaxUsernameLength = 150
	MinPasswordLength = 8
)

// Required trims value and records a required-field message when nothing is left.
func Required(errs Errors, field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(field, MsgRequired)
	}
	return value
}

func MaxLength(errs Errors, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		errs.Add(field, "Ensure this value has at most "+strconv.Itoa(max)+" characters.")
	}
}

// ValidateUsername allows letters, digits and @ . + - _ only.
func ValidateUsername(errs Errors, field, value string) string {
	value = Required(errs, field, value)
	if value == "" {
		return value
	}
	MaxLength(errs, field, value, MaxUsernameLength)
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			continue
		}
		errs.Add(field, "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
		break
	}
	return value
}

func ValidatePassword(errs Errors, field, confirmField, password, confirm string) {
	if password == "" {
		errs.Add(field, MsgRequired)
		return
	}
	if confirm == "" {
		errs.Add(confirmField, MsgRequired)
		return
	}
	if password != confirm {
		errs.Add(confirmField, "The two password fields didn't match.")
		return
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs.Add(confirmField, "This password is too short. It must contain at least 8 characters.")
	}
	if isDigits([]rune(password)) {
		errs.Add(confirmField, "This password is entirely numeric.")
	}
}

// License runs ValidateLicenseNumber and records its message under field.
func License(errs Errors, field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(field, MsgRequired)
		return value
	}
	if _, err := ValidateLicenseNumber(value); err != nil {
		errs.Add(field, err.Error())
	}
	return value
}
