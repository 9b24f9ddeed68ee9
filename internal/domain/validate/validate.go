// Package validate holds the input rules shared by the member, staff and
// expense services: name normalization and the Bangladeshi mobile format
// used as the member natural key.
package validate

import (
	"regexp"
	"strings"

	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	// Bangladeshi mobile numbers: 11 digits, operator prefix 013-019.
	mobileRe      = regexp.MustCompile(`^01[3-9][0-9]{8}$`)
	startsDigitRe = regexp.MustCompile(`^\d`)
	startsOtherRe = regexp.MustCompile(`^[^a-zA-Z0-9]`)
)

// NormalizeName lowercases, trims and collapses internal whitespace.
func NormalizeName(name string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(name)), " ")
}

// NormalizeTableName lowercases, trims and joins words with hyphens.
func NormalizeTableName(name string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(name)), "-")
}

// PersonName checks a normalized person name: at least three characters, not
// starting with a digit or special character.
func PersonName(name, what string) error {
	if len(name) < 3 {
		return apperr.Validationf("%s must be at least 3 characters long", what)
	}
	if startsDigitRe.MatchString(name) {
		return apperr.Validationf("%s cannot start with a number", what)
	}
	if startsOtherRe.MatchString(name) {
		return apperr.Validationf("%s cannot start with a special character", what)
	}
	return nil
}

// Title checks a normalized free-text title.
func Title(title string) error {
	if startsOtherRe.MatchString(title) {
		return apperr.Validationf("title cannot start with a number or a special character")
	}
	return nil
}

// Mobile checks the member natural key format.
func Mobile(mobile string) error {
	if len(mobile) != 11 {
		return apperr.Validationf("mobile number should be 11 characters")
	}
	if !mobileRe.MatchString(mobile) {
		return apperr.Validationf("invalid bangladeshi mobile number")
	}
	return nil
}
