package textproc

import (
	"strings"
	"unicode"
)

// tokenize splits lowercased text on whitespace and punctuation and
// keeps only purely alphabetic tokens, so "v2" and "2024" contribute
// nothing while "cloud-native" yields "cloud" and "native".
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := words[:0]
	for _, word := range words {
		if isAlphabetic(word) {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func isAlphabetic(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}
