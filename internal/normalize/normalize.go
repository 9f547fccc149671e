// Package normalize canonicalizes free-text names before they are compared.
//
// Normalization is deliberately minimal: surrounding whitespace is trimmed and
// the text is lowercased. Accents, punctuation and inner whitespace are left
// alone, so "Juan  Pérez" and "juan perez" remain distinct strings and only
// the similarity ratio brings them together.
package normalize

import (
	"strings"

	"github.com/Veraticus/waybill-match/internal/model"
)

// Missing is the key an absent value normalizes to. It is a valid key that
// simply never matches a real name.
const Missing = "nan"

// Key normalizes an optional cell value.
func Key(v model.Value) string {
	if !v.Valid {
		return Missing
	}
	return Text(v.Text)
}

// Text normalizes a plain string.
func Text(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
