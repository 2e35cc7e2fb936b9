// Package classifier implements the learned half of the hybrid pipeline: a
// bag-of-ngrams vectorizer feeding a TF-IDF naive Bayes classifier.
package classifier

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into unigrams and bigrams. Tokens
// shorter than two characters are dropped; bigrams join adjacent unigrams
// with a space.
func Tokenize(text string) []string {
	words := splitWords(text)

	tokens := make([]string, 0, len(words)*2)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}

func splitWords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			words = append(words, f)
		}
	}
	return words
}
