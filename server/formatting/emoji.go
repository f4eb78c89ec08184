package formatting

import (
	"regexp"
	"strings"

	"github.com/cheriki-dz/cheriki/lexicon"
)

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]+\s+|\n+`)
	listMarker       = regexp.MustCompile(`^(?:[-*•]|\d+[.)])[ \t]+`)
)

type emojiRule struct {
	glyph string
	terms *lexicon.TermSet
}

func newEmojiRules(lex *lexicon.Lexicon) []emojiRule {
	rules := lex.EmojiRules()
	out := make([]emojiRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, emojiRule{glyph: r.Glyph, terms: lexicon.NewTermSet(r.Keywords)})
	}
	return out
}

// decorate prefixes the sentence holding the first mention of each table
// keyword with its glyph. A glyph already present is never added again.
// List items keep their marker first: "- 📍 Oran".
func (f *Formatter) decorate(text string) string {
	for _, rule := range f.emoji {
		if strings.Contains(text, rule.glyph) {
			continue
		}
		span, ok := rule.terms.First(text)
		if !ok {
			continue
		}
		at := sentenceStart(text, span.Start)
		if m := listMarker.FindStringIndex(text[at:]); m != nil && at+m[1] <= span.Start {
			at += m[1]
		}
		at = insertionPoint(text, at)
		text = text[:at] + rule.glyph + " " + text[at:]
	}
	return text
}

// sentenceStart returns the offset of the sentence containing pos.
func sentenceStart(text string, pos int) int {
	start := 0
	for _, m := range sentenceBoundary.FindAllStringIndex(text[:pos], -1) {
		start = m[1]
	}
	return start
}

// insertionPoint moves at to the opening marker of an emphasis span when it
// falls inside one.
func insertionPoint(text string, at int) int {
	for _, s := range emphasisSpan.FindAllStringIndex(text, -1) {
		if s[0] >= at {
			break
		}
		if at < s[1] {
			return s[0]
		}
	}
	return at
}
