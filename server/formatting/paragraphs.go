package formatting

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cheriki-dz/cheriki/lexicon"
	"github.com/rivo/uniseg"
)

// LongSentenceThreshold is the length, in user-perceived characters, above
// which a finished sentence is followed by a blank line.
const LongSentenceThreshold = 60

const paragraphBreak = "\n\n"

var (
	sentenceGap    = regexp.MustCompile(`[.!?]+\s+`)
	listMarkerGap  = regexp.MustCompile(`([.!?])[ \t]+(\d+\.\s|[-*]\s|•)`)
	conjunctionGap = regexp.MustCompile(`(?i)([.!?])[ \t]+(and|et|walakin|mais|but)\b`)
)

// breakParagraphs inserts blank lines after long sentences and before list
// items and clause-leading conjunctions.
func breakParagraphs(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)

	start, prev := 0, 0
	for _, m := range sentenceGap.FindAllStringIndex(text, -1) {
		gap := text[m[0]:m[1]]
		punct := strings.TrimRightFunc(gap, unicode.IsSpace)
		next, _ := utf8.DecodeRuneInString(text[m[1]:])

		b.WriteString(text[prev:m[0]])
		b.WriteString(punct)

		sentence := strings.TrimSpace(text[start : m[0]+len(punct)])
		if startsSentence(next) && uniseg.GraphemeClusterCount(sentence) > LongSentenceThreshold {
			b.WriteString(paragraphBreak)
		} else {
			b.WriteString(gap[len(punct):])
		}
		start, prev = m[1], m[1]
	}
	b.WriteString(text[prev:])

	out := listMarkerGap.ReplaceAllString(b.String(), "$1"+paragraphBreak+"$2")
	return conjunctionGap.ReplaceAllString(out, "$1"+paragraphBreak+"$2")
}

func startsSentence(r rune) bool {
	return unicode.IsUpper(r) || lexicon.IsArabicLetter(r)
}
