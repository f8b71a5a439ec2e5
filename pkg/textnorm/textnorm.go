// Package textnorm normaliza SKUs y términos de búsqueda.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SKU recorta espacios y pasa a mayúsculas: "ab-12 " → "AB-12".
// Los Caser de x/text no son seguros entre goroutines; se crea uno por llamada.
func SKU(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// Fold quita tildes y aplica case folding para comparar sin distinguir mayúsculas ni acentos.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Contains indica si needle aparece en haystack ignorando mayúsculas y tildes.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
