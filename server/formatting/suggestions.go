package formatting

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cheriki-dz/cheriki/lexicon"
)

// MaxSuggestions caps the number of follow-up chips per message.
const MaxSuggestions = 3

// minSuggestionLetters is the exclusive lower bound on non-whitespace
// characters a captured clause needs to become a suggestion.
const minSuggestionLetters = 5

// SuggestionSource records which strategy produced a message's suggestions.
type SuggestionSource string

const (
	SourceNone    SuggestionSource = "none"
	SourceTrigger SuggestionSource = "trigger"
	SourceTopic   SuggestionSource = "topic"
	SourceGeneric SuggestionSource = "generic"
)

var trailingClause = regexp.MustCompile(`(?s)[,;].*$`)

type trigger struct {
	re     *regexp.Regexp
	prefix string
}

type topic struct {
	terms     *lexicon.TermSet
	questions []string
}

func newTriggers(lex *lexicon.Lexicon) []trigger {
	var out []trigger
	for _, t := range lex.Triggers() {
		out = append(out, trigger{re: regexp.MustCompile(t.Pattern), prefix: t.Prefix})
	}
	return out
}

func newTopics(lex *lexicon.Lexicon) []topic {
	var out []topic
	for _, t := range lex.Topics() {
		out = append(out, topic{terms: lexicon.NewTermSet(t.Keywords), questions: t.Questions})
	}
	return out
}

// Suggest derives up to three follow-up questions from a raw model reply.
// Invitations such as "wach t7ebb ..." are turned into questions first;
// without any, the reply's topic picks a canned set, and failing that a
// generic set is returned.
func (f *Formatter) Suggest(raw string) ([]string, SuggestionSource) {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range f.triggers {
		for _, m := range t.re.FindAllStringSubmatch(raw, -1) {
			clause := trailingClause.ReplaceAllString(m[1], "")
			clause = strings.Join(strings.Fields(clause), " ")
			if countLetters(clause) <= minSuggestionLetters {
				continue
			}
			s := t.prefix + clause + "?"
			key := strings.ToLower(s)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return capSuggestions(out), SourceTrigger
	}

	for _, tp := range f.topics {
		if tp.terms.Contains(raw) {
			return capSuggestions(tp.questions), SourceTopic
		}
	}
	return capSuggestions(f.generic), SourceGeneric
}

func capSuggestions(s []string) []string {
	if len(s) > MaxSuggestions {
		s = s[:MaxSuggestions]
	}
	return append([]string(nil), s...)
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
