// Package lexicon holds the multilingual lookup tables shared by the response
// formatter and the location resolver: the emoji table, emphasis keywords,
// place categories, map triggers, filler phrases, the Algerian city gazetteer
// and the follow-up suggestion dictionary.
//
// A Lexicon is read-only after construction. Every accessor hands out a copy,
// so one instance can be shared by any number of goroutines.
package lexicon

import (
	"slices"
	"sync"
)

// EmojiRule decorates the sentence mentioning any of Keywords with Glyph.
type EmojiRule struct {
	Keywords []string
	Glyph    string
}

// City is a gazetteer entry. Name is the canonical display name used in map
// queries; Aliases are the spellings users actually type, in any script.
type City struct {
	Name    string
	Aliases []string
}

// Category is a kind of place a user can ask for. Fallback is the plural
// search term used when the rest of the query is too short to be useful; it
// is empty for categories that fall back to a generic "places" search.
type Category struct {
	Name     string
	Keywords []string
	Fallback string
}

// Misspelling maps a frequent typo to its corrected form.
type Misspelling struct {
	Wrong   string
	Correct string
}

// Trigger is a follow-up invitation pattern. Pattern is a regular expression
// whose first capture group holds the clause to turn into a suggestion;
// Prefix is prepended to the capture.
type Trigger struct {
	Pattern string
	Prefix  string
}

// Topic maps conversation keywords to three canned follow-up questions.
type Topic struct {
	Name      string
	Keywords  []string
	Questions []string
}

// Lexicon is the full set of tables.
type Lexicon struct {
	emoji          []EmojiRule
	assistantNames []string
	importance     []string
	categories     []Category
	proximity      []string
	mapTriggers    []string
	mapPhrases     []string
	fillers        []string
	articles       []string
	prepositions   []string
	misspellings   []Misspelling
	cities         []City
	triggers       []Trigger
	topics         []Topic
	generic        []string
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the process-wide lexicon. It is built on first use.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex = newDefault()
	})
	return defaultLex
}

// EmojiRules returns the emoji table in priority order.
func (l *Lexicon) EmojiRules() []EmojiRule {
	out := make([]EmojiRule, len(l.emoji))
	for i, r := range l.emoji {
		out[i] = EmojiRule{Keywords: slices.Clone(r.Keywords), Glyph: r.Glyph}
	}
	return out
}

// AssistantNames returns the spellings of the assistant's own name.
func (l *Lexicon) AssistantNames() []string { return slices.Clone(l.assistantNames) }

// ImportanceKeywords returns the words that are always emphasized.
func (l *Lexicon) ImportanceKeywords() []string { return slices.Clone(l.importance) }

// Categories returns the place categories in fallback priority order.
func (l *Lexicon) Categories() []Category {
	out := make([]Category, len(l.categories))
	for i, c := range l.categories {
		out[i] = Category{Name: c.Name, Keywords: slices.Clone(c.Keywords), Fallback: c.Fallback}
	}
	return out
}

// ProximityPhrases returns phrases such as "near me" that already anchor a
// query to the user's position.
func (l *Lexicon) ProximityPhrases() []string { return slices.Clone(l.proximity) }

// MapTriggers returns the words that signal an explicit map request.
func (l *Lexicon) MapTriggers() []string { return slices.Clone(l.mapTriggers) }

// MapPhrases returns the map-service wording stripped from search queries.
func (l *Lexicon) MapPhrases() []string { return slices.Clone(l.mapPhrases) }

// Fillers returns conversational phrases stripped from search queries.
func (l *Lexicon) Fillers() []string { return slices.Clone(l.fillers) }

// Articles returns determiners that carry no meaning once fillers are gone.
func (l *Lexicon) Articles() []string { return slices.Clone(l.articles) }

// Prepositions returns locatives dropped together with a city name.
func (l *Lexicon) Prepositions() []string { return slices.Clone(l.prepositions) }

// Misspellings returns the known typo corrections.
func (l *Lexicon) Misspellings() []Misspelling { return slices.Clone(l.misspellings) }

// Cities returns the gazetteer in match priority order.
func (l *Lexicon) Cities() []City {
	out := make([]City, len(l.cities))
	for i, c := range l.cities {
		out[i] = City{Name: c.Name, Aliases: slices.Clone(c.Aliases)}
	}
	return out
}

// CityNames returns the Latin-script display names of all gazetteer cities,
// including accented and French variants.
func (l *Lexicon) CityNames() []string {
	var names []string
	for _, c := range l.cities {
		for _, a := range c.Aliases {
			if !HasArabic(a) {
				names = append(names, a)
			}
		}
	}
	return names
}

// Triggers returns the suggestion trigger patterns in priority order.
func (l *Lexicon) Triggers() []Trigger { return slices.Clone(l.triggers) }

// Topics returns the topic dictionary in priority order.
func (l *Lexicon) Topics() []Topic {
	out := make([]Topic, len(l.topics))
	for i, t := range l.topics {
		out[i] = Topic{Name: t.Name, Keywords: slices.Clone(t.Keywords), Questions: slices.Clone(t.Questions)}
	}
	return out
}

// GenericSuggestions returns the last-resort follow-up questions.
func (l *Lexicon) GenericSuggestions() []string { return slices.Clone(l.generic) }
