package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var isbnValidate = validator.New()

// NormalizeISBN strips the hyphens and spaces allowed in printed ISBNs and
// uppercases an ISBN-10 "x" check digit.
func NormalizeISBN(s string) string {
	return strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s)))
}

// ValidISBN reports whether s is an ISBN-10 or ISBN-13 with a correct check
// digit.
func ValidISBN(s string) bool {
	n := NormalizeISBN(s)
	if n == "" {
		return false
	}
	return isbnValidate.Var(n, "isbn") == nil
}
