package internal

import (
	"fmt"
	"regexp"
)

const (
	// DefaultBestWord marks the curated sub-folder of a main folder.
	DefaultBestWord = "best"
	// DefaultSignature is stamped into every file this tool writes.
	DefaultSignature = "PROCESSED_BY_TAG_POPULATOR_APP"
	// DefaultBestRating is the rating given to photos carrying the best keyword.
	DefaultBestRating = 2
)

// Delimiters split a path into keyword candidates.
const Delimiters = "/_.+?%"

// Rule rewrites tokens matching Pattern. For elimination rules Replacement is
// a regexp template; for dictionary rules it is the canonical keyword. A nil
// Replacement discards the token.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement *string
}

func keep(s string) *string { return &s }

func rule(pattern string, replacement *string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replacement: replacement}
}

func dictRule(pattern string, replacement *string) Rule {
	return rule("(?i)"+pattern, replacement)
}

// eliminationRules are structural rewrites applied to the whole token. Each
// rule is repeated until the token stops changing, since a match consumes the
// boundary character its neighbour would need.
var eliminationRules = []Rule{
	// YYYYMMDD, only as a run of exactly eight digits
	rule(`(^|\D)(\d{4})(\d{2})(\d{2})(\D|$)`, keep("${1}${2}-${3}-${4}${5}")),
	// "9photo" -> "9 photo"
	rule(`(\d+)(\p{L}+)`, keep("${1} ${2}")),
	// "photo9" -> "photo 9"
	rule(`(\p{L}+)(\d+)`, keep("${1} ${2}")),
}

// builtinDictionary is evaluated in order; the first matching rule wins.
var builtinDictionary = []Rule{
	// names
	dictRule(`Zo[eé][a-z,]*`, keep("Zoé")),
	dictRule(`Zozi`, keep("Zoé")),
	dictRule(`[AÁ]gi[a-z]*`, keep("Ági")),
	dictRule(`Otti[a-z]+`, keep("Otti")),
	dictRule(`Kati[a-z]+`, keep("Kati")),
	dictRule(`Any[aá][a-z]*`, keep("Anya")),
	dictRule(`Alex[a-z]+`, keep("Alex")),
	dictRule(`Betty[a-z]+`, keep("Betty")),
	dictRule(`Dan[a-z]*`, keep("Dani")),
	dictRule(`Krisz[a-z]*`, keep("Krisz")),
	dictRule(`Peti[a-z]*`, keep("Peti")),
	dictRule(`Robi[a-z]*`, keep("Robi")),

	// places
	dictRule(`Frankfurt[a-z]+`, keep("Frankfurt")),
	dictRule(`Ff[a-z]*`, keep("Frankfurt")),
	dictRule(`Höchst[a-z]+`, keep("Höchst")),
	dictRule(`Keszthely[a-z]+`, keep("Keszthely")),
	dictRule(`Nürnberg[a-z]+`, keep("Nürnberg")),
	dictRule(`Budapest[a-z]+`, keep("Budapest")),
	dictRule(`^Pest$`, keep("Budapest")),

	dictRule(`Csal[aá]d[a-z]*`, keep("Család")),
	dictRule(`Karácsony[a-z]+`, keep("Karácsony")),
	dictRule(`Túrázás`, keep("Túra")),
	dictRule(`^Esk[uü]v[őo][a-z]*`, keep("Esküvő")),
	dictRule(`^Im$`, keep("Ironman")),

	// camera generated substrings
	dictRule(`Dsc`, nil),
	dictRule(`Jpg`, nil),
	dictRule(`Img`, nil),
	dictRule(`Image[\-_]*`, nil),
	dictRule(`^P\d{4,}`, nil),

	// "and"
	dictRule(`^Az$`, nil),
	dictRule(`^Es$`, nil),
	dictRule(`^És$`, nil),
	dictRule(`^In$`, nil),
	dictRule(`^To$`, nil),

	dictRule(`^\d{3,}$`, nil),
	dictRule(`^-?\d*$`, nil),
	dictRule(`^.$`, nil),
}

// dictionaryRules compiles user entries and puts them ahead of the built-in
// dictionary.
func dictionaryRules(entries []DictionaryEntry) ([]Rule, error) {
	rules := make([]Rule, 0, len(entries)+len(builtinDictionary))
	for _, e := range entries {
		re, err := regexp.Compile("(?i)" + e.Pattern)
		if err != nil {
			return nil, fmt.Errorf("dictionary pattern %q: %w", e.Pattern, err)
		}
		r := Rule{Pattern: re}
		if e.Replacement != "" {
			r.Replacement = keep(e.Replacement)
		}
		rules = append(rules, r)
	}
	return append(rules, builtinDictionary...), nil
}
