// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{6,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// EscapeLike escapes LIKE/ILIKE wildcards in user input so search terms
// match literally. Postgres treats backslash as the default escape character.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ValidatePincode checks an Indian postal code (6 digits, no leading zero).
func ValidatePincode(pincode string) bool {
	match, _ := regexp.MatchString(`^[1-9][0-9]{5}$`, pincode)
	return match
}
