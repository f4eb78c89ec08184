// Package formatting turns raw language-model replies into chat-ready
// messages: normalized text broken into paragraphs, emphasis markers for
// names, amounts and times, contextual emojis, display-sized chunks and a
// handful of follow-up suggestions.
//
// Every function in this package is pure. A Formatter only reads the lexicon
// it was built from, so a single instance serves any number of goroutines.
package formatting

import (
	"strings"
	"sync"

	"github.com/cheriki-dz/cheriki/lexicon"
)

// FormattedMessage is the display form of one assistant reply.
type FormattedMessage struct {
	// Chunks are the message bubbles, in order. Empty only for blank input.
	Chunks []string `json:"chunks"`
	// HasFormatting is true when the text was split or transformed.
	HasFormatting bool `json:"hasFormatting"`
	// Suggestions holds zero to three follow-up questions, each ending in "?".
	Suggestions []string `json:"suggestions"`
	// Direction is "rtl" for replies containing Arabic script, else "ltr".
	Direction string `json:"direction,omitempty"`

	// SuggestionSource tells which strategy produced Suggestions.
	SuggestionSource SuggestionSource `json:"-"`
}

// Formatter runs the formatting pipeline with tables compiled from a lexicon.
type Formatter struct {
	emphasis []emphasisRule
	emoji    []emojiRule
	triggers []trigger
	topics   []topic
	generic  []string
}

// New compiles the lexicon's tables into a Formatter.
func New(lex *lexicon.Lexicon) *Formatter {
	return &Formatter{
		emphasis: newEmphasisRules(lex),
		emoji:    newEmojiRules(lex),
		triggers: newTriggers(lex),
		topics:   newTopics(lex),
		generic:  lex.GenericSuggestions(),
	}
}

var defaultFormatter = sync.OnceValue(func() *Formatter {
	return New(lexicon.Default())
})

// Default returns the Formatter built from lexicon.Default.
func Default() *Formatter {
	return defaultFormatter()
}

// Format runs raw through the default Formatter.
func Format(raw string, opts Options, includeSuggestions bool) FormattedMessage {
	return Default().Format(raw, opts, includeSuggestions)
}

// Format applies the enabled stages in a fixed order: normalization,
// paragraph breaks, emphasis, emojis, then chunking. Suggestions are drawn
// from raw, not from the transformed text.
func (f *Formatter) Format(raw string, opts Options, includeSuggestions bool) FormattedMessage {
	if strings.TrimSpace(raw) == "" {
		return FormattedMessage{
			Chunks:           []string{},
			Suggestions:      []string{},
			Direction:        "ltr",
			SuggestionSource: SourceNone,
		}
	}

	text := f.Transform(raw, opts)
	chunks := Chunk(text, opts.chunkLimit())

	msg := FormattedMessage{
		Chunks:           chunks,
		HasFormatting:    len(chunks) > 1 || text != raw,
		Suggestions:      []string{},
		Direction:        Direction(text),
		SuggestionSource: SourceNone,
	}
	if includeSuggestions {
		msg.Suggestions, msg.SuggestionSource = f.Suggest(raw)
	}
	return msg
}

// Transform runs every enabled text stage but does not chunk.
func (f *Formatter) Transform(raw string, opts Options) string {
	text := raw
	if opts.CleanSymbols {
		text = Normalize(text)
	}
	if opts.AddLineBreaks {
		text = breakParagraphs(text)
	}
	if opts.EnableMarkdown {
		text = f.emphasize(text)
	}
	if opts.EnableEmojis {
		text = f.decorate(text)
	}
	return text
}

// Direction reports the reading direction of text: "rtl" when it contains
// Arabic script, "ltr" otherwise.
func Direction(text string) string {
	if lexicon.HasArabic(text) {
		return "rtl"
	}
	return "ltr"
}
