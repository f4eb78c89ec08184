package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermSetBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		opts  []TermOption
		text  string
		want  []string
	}{
		{
			name:  "whole word only",
			terms: []string{"atm"},
			text:  "the atmosphere is nice near the atm",
			want:  []string{"atm"},
		},
		{
			name:  "substring of a longer word is ignored",
			terms: []string{"oran"},
			text:  "I like orange juice",
			want:  nil,
		},
		{
			name:  "plural suffix accepted",
			terms: []string{"restaurant", "pharmacy"},
			text:  "restaurants and pharmacy",
			want:  []string{"restaurants", "pharmacy"},
		},
		{
			name:  "plural suffix disabled",
			terms: []string{"map"},
			opts:  []TermOption{WithoutPlurals()},
			text:  "maps and map",
			want:  []string{"map"},
		},
		{
			name:  "case insensitive by default",
			terms: []string{"near me"},
			text:  "Hospitals NEAR   ME please",
			want:  []string{"NEAR   ME"},
		},
		{
			name:  "exact case",
			terms: []string{"Oran"},
			opts:  []TermOption{ExactCase(), WithoutPlurals()},
			text:  "oran and Oran",
			want:  []string{"Oran"},
		},
		{
			name:  "longest term wins",
			terms: []string{"maps", "google maps"},
			text:  "open google maps now",
			want:  []string{"google maps"},
		},
		{
			name:  "accented boundaries",
			terms: []string{"école"},
			text:  "une école, deux écoles",
			want:  []string{"école", "écoles"},
		},
		{
			name:  "punctuation counts as boundary",
			terms: []string{"restaurant"},
			text:  "rouh l'restaurant.",
			want:  []string{"restaurant"},
		},
		{
			name:  "arabic whole word by default",
			terms: []string{"في"},
			text:  "كافيه في وهران",
			want:  []string{"في"},
		},
		{
			name:  "arabic substring with clitic",
			terms: []string{"مستشفى"},
			opts:  []TermOption{ArabicSubstrings()},
			text:  "وين المستشفى",
			want:  []string{"مستشفى"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTermSet(tt.terms, tt.opts...)
			var got []string
			for _, s := range ts.FindAll(tt.text) {
				assert.Equal(t, s.Term, tt.text[s.Start:s.End])
				got = append(got, s.Term)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTermSetReplaceAll(t *testing.T) {
	ts := NewTermSet([]string{"show me", "please"})
	out := ts.ReplaceAll("please show me hospitals", func(string) string { return "" })
	assert.Equal(t, "  hospitals", out)

	upper := NewTermSet([]string{"urgent"}).ReplaceAll("c'est urgent!", func(m string) string {
		return "**" + m + "**"
	})
	assert.Equal(t, "c'est **urgent**!", upper)
}

func TestTermSetEmpty(t *testing.T) {
	ts := NewTermSet(nil)
	assert.False(t, ts.Contains("anything"))
	_, ok := ts.First("")
	assert.False(t, ok)
}

func TestDefaultLexiconIsShared(t *testing.T) {
	a := Default()
	b := Default()
	require.Same(t, a, b)

	cities := a.Cities()
	require.NotEmpty(t, cities)
	cities[0].Name = "changed"
	cities[0].Aliases[0] = "changed"
	assert.Equal(t, "Algiers", a.Cities()[0].Name)
	assert.Equal(t, "Algiers", a.Cities()[0].Aliases[0])

	rules := a.EmojiRules()
	rules[0].Keywords = nil
	assert.NotEmpty(t, a.EmojiRules()[0].Keywords)
}

func TestDefaultLexiconTables(t *testing.T) {
	lex := Default()

	assert.Len(t, lex.GenericSuggestions(), 3)
	for _, s := range lex.GenericSuggestions() {
		assert.Regexp(t, `\?$`, s)
	}
	for _, topic := range lex.Topics() {
		assert.Len(t, topic.Questions, 3, topic.Name)
		assert.NotEmpty(t, topic.Keywords, topic.Name)
	}

	var fallbacks []string
	for _, c := range lex.Categories() {
		if c.Fallback != "" {
			fallbacks = append(fallbacks, c.Fallback)
		}
	}
	assert.Equal(t, []string{"hospitals", "restaurants", "pharmacies"}, fallbacks)

	names := lex.CityNames()
	assert.Contains(t, names, "Oran")
	assert.Contains(t, names, "Béjaïa")
	for _, n := range names {
		assert.False(t, HasArabic(n), n)
	}
}

func TestScriptHelpers(t *testing.T) {
	assert.True(t, HasArabic("salam وهران"))
	assert.False(t, HasArabic("salam khoya"))
	assert.True(t, IsArabicLetter('م'))
	assert.False(t, IsArabicLetter('m'))
	assert.False(t, IsArabicLetter('٣'))
}
