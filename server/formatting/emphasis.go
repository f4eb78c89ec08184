package formatting

import (
	"regexp"
	"strings"

	"github.com/cheriki-dz/cheriki/lexicon"
)

// emphasisSpan matches text already wrapped in bold or italic markers.
var emphasisSpan = regexp.MustCompile(`\*\*[^*]+\*\*|\*[^*\s][^*]*\*`)

var (
	amountPattern = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(DA|DZD|dinars?|euros?|km|kg)\b`)
	clockPattern  = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
)

type emphasisRule func(segment string) string

func termRule(ts *lexicon.TermSet, marker string) emphasisRule {
	return func(segment string) string {
		return ts.ReplaceAll(segment, func(m string) string {
			return marker + m + marker
		})
	}
}

func regexpRule(re *regexp.Regexp, repl string) emphasisRule {
	return func(segment string) string {
		return re.ReplaceAllString(segment, repl)
	}
}

func newEmphasisRules(lex *lexicon.Lexicon) []emphasisRule {
	return []emphasisRule{
		termRule(lexicon.NewTermSet(lex.AssistantNames(), lexicon.ExactCase(), lexicon.WithoutPlurals()), "**"),
		termRule(lexicon.NewTermSet(lex.ImportanceKeywords()), "**"),
		termRule(lexicon.NewTermSet(lex.CityNames(), lexicon.ExactCase(), lexicon.WithoutPlurals()), "*"),
		regexpRule(amountPattern, "**${1} ${2}**"),
		regexpRule(clockPattern, "**${1}**"),
	}
}

func (f *Formatter) emphasize(text string) string {
	for _, rule := range f.emphasis {
		text = outsideEmphasis(text, rule)
	}
	return text
}

// outsideEmphasis applies fn to every stretch of text that is not already
// inside an emphasis span.
func outsideEmphasis(text string, fn func(string) string) string {
	spans := emphasisSpan.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return fn(text)
	}
	var b strings.Builder
	b.Grow(len(text) + 16)
	prev := 0
	for _, s := range spans {
		b.WriteString(fn(text[prev:s[0]]))
		b.WriteString(text[s[0]:s[1]])
		prev = s[1]
	}
	b.WriteString(fn(text[prev:]))
	return b.String()
}
