package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devolve o texto em minúsculas, sem acentos e sem espaços nas bordas.
// "Março " e "MARCO" resultam ambos em "marco".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ContainsAny informa se o texto contém alguma das palavras-chave,
// ignorando caixa e acentuação.
func ContainsAny(s string, keywords ...string) bool {
	folded := Fold(s)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(folded, Fold(k)) {
			return true
		}
	}
	return false
}
