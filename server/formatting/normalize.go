package formatting

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cheriki-dz/cheriki/lexicon"
	"golang.org/x/text/unicode/norm"
)

var (
	ellipsisRun = regexp.MustCompile(`\.{3,}`)
	bangRun     = regexp.MustCompile(`!{2,}`)
	questionRun = regexp.MustCompile(`\?{2,}`)
)

// Normalize canonicalizes raw model output: NFC composition, single spaces,
// collapsed punctuation runs and a space wherever Latin and Arabic letters
// touch. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = strings.Join(strings.Fields(text), " ")
	text = ellipsisRun.ReplaceAllString(text, "...")
	text = bangRun.ReplaceAllString(text, "!")
	text = questionRun.ReplaceAllString(text, "?")
	text = separateScripts(text)
	return strings.TrimSpace(text)
}

func separateScripts(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 && scriptsTouch(prev, r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func scriptsTouch(a, b rune) bool {
	return (isLatinLetter(a) && lexicon.IsArabicLetter(b)) ||
		(lexicon.IsArabicLetter(a) && isLatinLetter(b))
}

func isLatinLetter(r rune) bool {
	return unicode.Is(unicode.Latin, r) && unicode.IsLetter(r)
}
