package internal

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// KeywordSet is a deduplicated set of keywords attached to one image.
type KeywordSet map[string]struct{}

func NewKeywordSet(keys ...string) KeywordSet {
	s := make(KeywordSet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts k unless it is empty after trimming.
func (s KeywordSet) Add(k string) {
	if k = strings.TrimSpace(k); k != "" {
		s[k] = struct{}{}
	}
}

func (s KeywordSet) Has(k string) bool {
	_, ok := s[k]
	return ok
}

// Sorted returns the keywords in lexical order.
func (s KeywordSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Tagger computes the keyword set and rating of a photo.
type Tagger struct {
	normalizer  *Normalizer
	signature   string
	bestKeyword string
	bestRating  int
	keywordBase string
}

// NewTagger builds a tagger from the config. The best keyword is the
// normalized form of the configured best word.
func NewTagger(cfg *Config) (*Tagger, error) {
	n, err := NewNormalizer(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	best, ok := n.NormalizeWord(cfg.BestWord)
	if !ok {
		best = cfg.BestWord
	}
	return &Tagger{
		normalizer:  n,
		signature:   cfg.Signature,
		bestKeyword: best,
		bestRating:  cfg.BestRating,
		keywordBase: cfg.KeywordBase,
	}, nil
}

func (t *Tagger) Normalizer() *Normalizer { return t.normalizer }

// BestKeyword is the canonical keyword whose presence sets the rating.
func (t *Tagger) BestKeyword() string { return t.bestKeyword }

func (t *Tagger) Signature() string { return t.signature }

// HasSignature reports whether keys were written by this tool.
func (t *Tagger) HasSignature(keys []string) bool {
	return slices.Contains(keys, t.signature)
}

// PopulateKeywords merges existing and extra keywords with the keywords
// derived from path. path may be empty, which disables path keywords. With
// normalize set every keyword, old or new, goes through the normalizer.
func (t *Tagger) PopulateKeywords(existing []string, normalize bool, path string, extra []string) KeywordSet {
	set := NewKeywordSet()
	add := func(raw string) {
		if raw == t.signature {
			set.Add(raw)
			return
		}
		if !normalize {
			set.Add(raw)
			return
		}
		for _, w := range t.normalizer.Normalize(raw) {
			set.Add(w)
		}
	}

	for _, k := range existing {
		add(k)
	}
	for _, k := range extra {
		add(k)
	}
	if path != "" {
		for _, tok := range SplitPath(t.keywordPath(path)) {
			add(tok)
		}
	}
	return set
}

// keywordPath returns path relative to the keyword base when it lies beneath
// it, otherwise path unchanged.
func (t *Tagger) keywordPath(path string) string {
	if t.keywordBase == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(t.keywordBase, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Stamp adds the signature keyword.
func (t *Tagger) Stamp(set KeywordSet) {
	set.Add(t.signature)
}

// Rating returns the rating implied by set: the best rating when the best
// keyword is present, nil otherwise.
func (t *Tagger) Rating(set KeywordSet) *int {
	if !set.Has(t.bestKeyword) {
		return nil
	}
	r := t.bestRating
	return &r
}

// KeywordStats counts keyword occurrences across a gather run.
type KeywordStats map[string]int

func (s KeywordStats) Extend(keys []string) {
	for _, k := range keys {
		s[k]++
	}
}

// Keys returns the counted keywords in lexical order.
func (s KeywordStats) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}
