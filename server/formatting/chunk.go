package formatting

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Chunk splits text into display bubbles of at most maxLen user-perceived
// characters. Text is only cut between sentences; a sentence longer than
// maxLen becomes a chunk of its own. The result never contains empty chunks.
func Chunk(text string, maxLen int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxChunkLength
	}
	if uniseg.GraphemeClusterCount(text) <= maxLen {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if c := strings.TrimSpace(current.String()); c != "" {
			chunks = append(chunks, c)
		}
		current.Reset()
		size = 0
	}

	for _, s := range splitSentences(text) {
		n := uniseg.GraphemeClusterCount(s.text)
		gap := uniseg.GraphemeClusterCount(s.gap)
		if size > 0 && size+gap+n > maxLen {
			flush()
		}
		if size > 0 {
			current.WriteString(s.gap)
			size += gap
		}
		current.WriteString(s.text)
		size += n
	}
	flush()
	return chunks
}

type sentence struct {
	gap  string // whitespace separating it from the previous sentence
	text string
}

func splitSentences(text string) []sentence {
	var out []sentence
	prev := 0
	gap := ""
	for _, m := range sentenceGap.FindAllStringIndex(text, -1) {
		body := text[m[0]:m[1]]
		punctEnd := m[0] + len(strings.TrimRight(body, " \t\r\n\f\v"))
		if s := text[prev:punctEnd]; strings.TrimSpace(s) != "" {
			out = append(out, sentence{gap: gap, text: s})
		}
		gap = text[punctEnd:m[1]]
		prev = m[1]
	}
	if s := text[prev:]; strings.TrimSpace(s) != "" {
		out = append(out, sentence{gap: gap, text: s})
	}
	return out
}
