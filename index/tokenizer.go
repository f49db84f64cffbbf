package index

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token represents a single normalised term and its position in the
// original text unit.
type Token struct {
	Term string
	Pos  int
}

// Tokenize breaks text into lowercased Tokens, splitting on runs of
// non-alphanumeric characters and discarding terms shorter than two
// characters. There is no stemming, stop-word removal, or Unicode
// normalization beyond case folding, so the same input always produces
// the same terms.
func Tokenize(text string) []Token {
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]Token, 0, len(words))
	pos := 0
	for _, word := range words {
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		tokens = append(tokens, Token{Term: word, Pos: pos})
		pos++
	}
	return tokens
}

// foldRunes lowercases a string rune by rune. Folding per rune keeps
// offsets aligned with the original text, which byte-oriented ToLower
// does not guarantee.
func foldRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// matchRange locates the first case-insensitive occurrence of query in
// text and returns its bounds as rune offsets, or (-1, -1) if text does
// not contain the query verbatim.
func matchRange(text, query string) (start, end int) {
	t := foldRunes(text)
	q := foldRunes(query)
	if len(q) == 0 || len(q) > len(t) {
		return -1, -1
	}
	for i := 0; i+len(q) <= len(t); i++ {
		matched := true
		for j := range q {
			if t[i+j] != q[j] {
				matched = false
				break
			}
		}
		if matched {
			return i, i + len(q)
		}
	}
	return -1, -1
}

// containsFold reports whether text contains query, ignoring case.
func containsFold(text, query string) bool {
	start, _ := matchRange(text, query)
	return start >= 0
}
