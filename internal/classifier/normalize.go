// Package classifier provides an offline-trained naive Bayes model that
// predicts spending categories from expense descriptions.
package classifier

import "strings"

// Normalize lowercases text, strips everything but letters, digits and
// spaces, and collapses runs of whitespace.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and returns its unigrams followed by its bigrams.
// Bigrams join adjacent words with an underscore so they survive as single
// vocabulary entries.
func Tokenize(text string) []string {
	words := strings.Fields(Normalize(text))
	if len(words) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(words)*2-1)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+"_"+words[i+1])
	}
	return tokens
}
