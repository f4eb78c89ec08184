// Package location detects place and map requests in a user's chat message
// and turns them into a clean map-search query.
package location

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/cheriki-dz/cheriki/lexicon"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	nearMe         = "near me"
	minQueryLength = 3
	minFuzzyLength = 7
)

var (
	queryPunctuation = regexp.MustCompile(`[?!.؟،]`)
	tokenPattern     = regexp.MustCompile(`[\p{L}\p{M}]+`)
)

type category struct {
	fallback string
	terms    *lexicon.TermSet
}

type city struct {
	name  string
	terms *lexicon.TermSet
}

type misspelling struct {
	re      *regexp.Regexp
	correct string
}

// Resolver extracts map-search queries from user messages. It is immutable
// and safe for concurrent use.
type Resolver struct {
	categories   []category
	places       *lexicon.TermSet
	proximity    *lexicon.TermSet
	mapTriggers  *lexicon.TermSet
	strip        []*lexicon.TermSet
	prepositions map[string]struct{}
	misspellings []misspelling
	cities       []city
	fuzzy        []string
}

// NewResolver compiles the lexicon's place tables.
func NewResolver(lex *lexicon.Lexicon) *Resolver {
	r := &Resolver{
		proximity:    lexicon.NewTermSet(lex.ProximityPhrases(), lexicon.ArabicSubstrings()),
		mapTriggers:  lexicon.NewTermSet(lex.MapTriggers(), lexicon.WithoutPlurals(), lexicon.ArabicSubstrings()),
		prepositions: make(map[string]struct{}),
	}

	var all []string
	for _, c := range lex.Categories() {
		r.categories = append(r.categories, category{
			fallback: c.Fallback,
			terms:    lexicon.NewTermSet(c.Keywords, lexicon.ArabicSubstrings()),
		})
		all = append(all, c.Keywords...)
		for _, k := range c.Keywords {
			if utf8.RuneCountInString(k) >= minFuzzyLength && !strings.Contains(k, " ") && !lexicon.HasArabic(k) {
				r.fuzzy = append(r.fuzzy, k)
			}
		}
	}
	all = append(all, lex.ProximityPhrases()...)
	r.places = lexicon.NewTermSet(all, lexicon.ArabicSubstrings())

	r.strip = []*lexicon.TermSet{
		lexicon.NewTermSet(lex.Fillers(), lexicon.WithoutPlurals()),
		lexicon.NewTermSet(lex.MapPhrases(), lexicon.WithoutPlurals()),
		lexicon.NewTermSet(lex.Articles(), lexicon.WithoutPlurals()),
	}
	for _, p := range lex.Prepositions() {
		r.prepositions[p] = struct{}{}
	}
	for _, m := range lex.Misspellings() {
		r.misspellings = append(r.misspellings, misspelling{
			re:      regexp.MustCompile(`(?i)` + m.Wrong),
			correct: m.Correct,
		})
	}
	for _, c := range lex.Cities() {
		r.cities = append(r.cities, city{
			name:  c.Name,
			terms: lexicon.NewTermSet(c.Aliases, lexicon.WithoutPlurals(), lexicon.ArabicSubstrings()),
		})
	}
	return r
}

var defaultResolver = sync.OnceValue(func() *Resolver {
	return NewResolver(lexicon.Default())
})

// Default returns the Resolver built from lexicon.Default.
func Default() *Resolver {
	return defaultResolver()
}

// Resolve runs message through the default Resolver.
func Resolve(message string, hasKnownLocation bool) *string {
	return Default().Resolve(message, hasKnownLocation)
}

// Resolve returns a map-search query for message, or nil when the message
// asks for neither a kind of place nor a map. A returned query is never
// shorter than three characters.
//
// When the message names an Algerian city the query is anchored to it
// ("restaurants in Oran, Algeria"); otherwise, if hasKnownLocation is set,
// it is anchored to the user ("pharmacies near me").
func (r *Resolver) Resolve(message string, hasKnownLocation bool) *string {
	lower := cases.Lower(language.Und).String(norm.NFC.String(message))

	hasPlace := r.places.Contains(lower)
	if !hasPlace {
		if fixed, ok := r.repairCategory(lower); ok {
			lower, hasPlace = fixed, true
		}
	}
	hasMap := r.mapTriggers.Contains(lower)
	if !hasPlace && !hasMap {
		return nil
	}

	query := r.cleanQuery(lower)
	if hasMap && !hasPlace && query == "" {
		if hasKnownLocation {
			query = "places " + nearMe
		} else {
			query = "Algeria map"
		}
	}

	if name, rest, ok := r.extractCity(query); ok {
		if hasPlace && rest != "" {
			query = rest + " in " + name + ", Algeria"
		} else {
			query = name + ", Algeria"
		}
	} else if hasKnownLocation && !r.proximity.Contains(query) {
		query = query + " " + nearMe
	}
	query = collapse(query)

	if utf8.RuneCountInString(query) < minQueryLength {
		query = r.fallback(lower, hasPlace, hasKnownLocation)
	}
	return &query
}

// cleanQuery strips conversational filler, map wording and stray articles,
// fixes known typos and drops sentence punctuation.
func (r *Resolver) cleanQuery(text string) string {
	for _, ts := range r.strip {
		text = ts.ReplaceAll(text, func(string) string { return " " })
	}
	for _, m := range r.misspellings {
		text = m.re.ReplaceAllString(text, m.correct)
	}
	text = queryPunctuation.ReplaceAllString(text, " ")
	return strings.TrimRight(collapse(text), ",;: ")
}

// extractCity finds the first gazetteer city in query and returns its
// canonical name together with the query minus the city and any locative
// preposition in front of it. Arabic names match inside a word, so a clitic
// such as ب or ف written onto the name goes with it.
func (r *Resolver) extractCity(query string) (name, rest string, ok bool) {
	for _, c := range r.cities {
		span, found := c.terms.First(query)
		if !found {
			continue
		}
		start, end := span.Start, span.End
		if lexicon.HasArabic(span.Term) {
			start, end = wordBounds(query, start, end)
		}
		before := strings.TrimRightFunc(query[:start], unicode.IsSpace)
		i := strings.LastIndexFunc(before, unicode.IsSpace)
		if _, isPrep := r.prepositions[before[i+1:]]; isPrep {
			before = before[:i+1]
		}
		return c.name, collapse(before + " " + query[end:]), true
	}
	return "", "", false
}

// wordBounds widens [start, end) to the whole word around it.
func wordBounds(text string, start, end int) (int, int) {
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isLetter(r) {
			break
		}
		start -= size
	}
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !isLetter(r) {
			break
		}
		end += size
	}
	return start, end
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r)
}

// repairCategory looks for a long Latin token that is a near miss of a
// category keyword and rewrites it, so "restorant" still finds restaurants.
func (r *Resolver) repairCategory(text string) (string, bool) {
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		token := text[loc[0]:loc[1]]
		if lexicon.HasArabic(token) || utf8.RuneCountInString(token) < minFuzzyLength {
			continue
		}
		stem, plural := strings.CutSuffix(token, "s")
		for _, keyword := range r.fuzzy {
			var fixed string
			switch {
			case nearMiss(token, keyword):
				fixed = keyword
			case plural && nearMiss(stem, keyword):
				fixed = keyword + "s"
			default:
				continue
			}
			return text[:loc[0]] + fixed + text[loc[1]:], true
		}
	}
	return text, false
}

// nearMiss reports whether token is a typo of keyword. One edit is always
// accepted. Keywords of nine or more runes accept a second edit only when
// the word ending is intact, so a different word built on the same stem
// ("pharmacist" against "pharmacies") is not taken for a typo.
func nearMiss(token, keyword string) bool {
	d := levenshtein.ComputeDistance(token, keyword)
	switch {
	case d <= 1:
		return true
	case d == 2 && utf8.RuneCountInString(keyword) >= 9:
		return lastRunes(token, 2) == lastRunes(keyword, 2)
	default:
		return false
	}
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) < n {
		return s
	}
	return string(r[len(r)-n:])
}

// fallback picks a generic query when cleaning left almost nothing.
func (r *Resolver) fallback(lower string, hasPlace, hasKnownLocation bool) string {
	term := "places"
	if hasPlace {
		for _, c := range r.categories {
			if c.fallback != "" && c.terms.Contains(lower) {
				term = c.fallback
				break
			}
		}
	}
	switch {
	case hasKnownLocation:
		return term + " " + nearMe
	case term == "places":
		return "Algeria"
	default:
		return term + " Algeria"
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
