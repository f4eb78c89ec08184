package lexicon

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span locates one match of a term inside a text. Start and End are byte
// offsets; Term is the matched text as it appears in the input.
type Span struct {
	Start int
	End   int
	Term  string
}

// TermOption configures a TermSet.
type TermOption func(*termConfig)

type termConfig struct {
	exactCase        bool
	plurals          bool
	arabicSubstrings bool
}

// ExactCase makes matching case-sensitive.
func ExactCase() TermOption {
	return func(c *termConfig) { c.exactCase = true }
}

// WithoutPlurals disables the optional plural suffix (s, es, x) accepted
// after Latin-script terms.
func WithoutPlurals() TermOption {
	return func(c *termConfig) { c.plurals = false }
}

// ArabicSubstrings lets Arabic-script terms match anywhere, so that clitic
// prefixes such as ال or ب do not hide them.
func ArabicSubstrings() TermOption {
	return func(c *termConfig) { c.arabicSubstrings = true }
}

// TermSet matches a fixed list of words and phrases on whole-word
// boundaries. Boundaries are Unicode-aware: a term only matches when it is
// not directly preceded or followed by a letter, digit or underscore.
//
// A TermSet is immutable and safe for concurrent use.
type TermSet struct {
	cfg    termConfig
	words  *regexp.Regexp
	arabic []string
}

// NewTermSet compiles terms into a matcher. Terms are tried longest first, so
// "google maps" wins over "maps". Empty terms are ignored.
func NewTermSet(terms []string, opts ...TermOption) *TermSet {
	cfg := termConfig{plurals: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	ts := &TermSet{cfg: cfg}
	var alts []string
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if cfg.arabicSubstrings && HasArabic(t) {
			ts.arabic = append(ts.arabic, t)
			continue
		}
		alts = append(alts, t)
	}

	sort.SliceStable(alts, func(i, j int) bool {
		return utf8.RuneCountInString(alts[i]) > utf8.RuneCountInString(alts[j])
	})
	if len(alts) > 0 {
		quoted := make([]string, len(alts))
		for i, a := range alts {
			quoted[i] = strings.Join(strings.Fields(regexp.QuoteMeta(a)), `\s+`)
		}
		flags := "(?i)"
		if cfg.exactCase {
			flags = ""
		}
		ts.words = regexp.MustCompile(flags + `^(?:` + strings.Join(quoted, "|") + `)`)
	}
	return ts
}

// Contains reports whether any term occurs in text.
func (ts *TermSet) Contains(text string) bool {
	_, ok := ts.First(text)
	return ok
}

// First returns the leftmost match in text.
func (ts *TermSet) First(text string) (Span, bool) {
	spans := ts.FindAll(text)
	if len(spans) == 0 {
		return Span{}, false
	}
	return spans[0], true
}

// FindAll returns every non-overlapping match in text, ordered by position.
func (ts *TermSet) FindAll(text string) []Span {
	var spans []Span

	if ts.words != nil {
		prev := rune(-1)
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !isWordRune(prev) {
				if loc := ts.words.FindStringIndex(text[i:]); loc != nil {
					if end, ok := ts.wordEnd(text, i+loc[1]); ok {
						spans = append(spans, Span{Start: i, End: end, Term: text[i:end]})
						prev, _ = utf8.DecodeLastRuneInString(text[:end])
						i = end
						continue
					}
				}
			}
			prev = r
			i += size
		}
	}

	for _, term := range ts.arabic {
		for off := 0; off < len(text); {
			idx := strings.Index(text[off:], term)
			if idx < 0 {
				break
			}
			start := off + idx
			spans = append(spans, Span{Start: start, End: start + len(term), Term: term})
			off = start + len(term)
		}
	}

	if len(ts.arabic) == 0 {
		return spans
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
	out := spans[:0]
	last := -1
	for _, s := range spans {
		if s.Start < last {
			continue
		}
		out = append(out, s)
		last = s.End
	}
	return out
}

// ReplaceAll replaces every match with the result of repl.
func (ts *TermSet) ReplaceAll(text string, repl func(match string) string) string {
	spans := ts.FindAll(text)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, s := range spans {
		b.WriteString(text[prev:s.Start])
		b.WriteString(repl(s.Term))
		prev = s.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

// wordEnd extends a raw match over an optional plural suffix and checks
// that the match ends on a word boundary.
func (ts *TermSet) wordEnd(text string, end int) (int, bool) {
	if ts.cfg.plurals {
		for _, suffix := range []string{"es", "s", "x"} {
			if hasPrefixFold(text[end:], suffix) && boundaryAt(text, end+len(suffix)) {
				return end + len(suffix), true
			}
		}
	}
	return end, boundaryAt(text, end)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func boundaryAt(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// IsArabicLetter reports whether r is a letter of the Arabic script.
func IsArabicLetter(r rune) bool {
	return unicode.Is(unicode.Arabic, r) && unicode.IsLetter(r)
}

// HasArabic reports whether s contains any Arabic-script character.
func HasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
