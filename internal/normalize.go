package internal

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites raw keyword candidates through the elimination rules and
// then the dictionary rules.
type Normalizer struct {
	elimination []Rule
	dictionary  []Rule
}

// NewNormalizer builds a normalizer with the built-in rules plus the
// configured dictionary entries, which take precedence.
func NewNormalizer(entries []DictionaryEntry) (*Normalizer, error) {
	dict, err := dictionaryRules(entries)
	if err != nil {
		return nil, err
	}
	return &Normalizer{elimination: eliminationRules, dictionary: dict}, nil
}

// Normalize runs the elimination rules over the whole token, splits the result
// on whitespace and returns the words surviving the dictionary pass.
func (n *Normalizer) Normalize(raw string) []string {
	token := strings.TrimSpace(norm.NFC.String(raw))
	if token == "" {
		return nil
	}
	for _, r := range n.elimination {
		token = eliminate(r, token)
	}

	var words []string
	for _, w := range strings.Fields(token) {
		if kw, ok := n.NormalizeWord(w); ok {
			words = append(words, kw)
		}
	}
	return words
}

// eliminate applies r to token until it reaches a fixed point.
func eliminate(r Rule, token string) string {
	for {
		next := r.Pattern.ReplaceAllString(token, *r.Replacement)
		if next == token {
			return token
		}
		token = next
	}
}

// NormalizeWord applies the dictionary to a single word. It reports false when
// the word is noise.
func (n *Normalizer) NormalizeWord(word string) (string, bool) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", false
	}
	for _, r := range n.dictionary {
		if !r.Pattern.MatchString(word) {
			continue
		}
		if r.Replacement == nil {
			return "", false
		}
		return *r.Replacement, true
	}
	return word, true
}

// SplitPath cuts a path into raw tokens on the delimiter set. Empty and
// whitespace-only tokens are dropped.
func SplitPath(path string) []string {
	fields := strings.FieldsFunc(path, func(r rune) bool {
		return r == '\\' || strings.ContainsRune(Delimiters, r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
