// Command cheriki-preview shows in a terminal how a model reply would reach
// the chat UI: the formatted chunks rendered as markdown, the follow-up
// suggestions and the map search the message would trigger.
//
//	echo "Bsit, rouh l'restaurant fi centre ville." | cheriki-preview
//	cheriki-preview -max-chunk 120 -no-emoji "Salam! Wach t7ebb na3tik recette?"
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rivo/uniseg"

	"github.com/cheriki-dz/cheriki/server/formatting"
	"github.com/cheriki-dz/cheriki/server/location"
)

var (
	maxChunk      = flag.Int("max-chunk", formatting.DefaultOptions().MaxChunkLength, "Maximum characters per chunk")
	noEmoji       = flag.Bool("no-emoji", false, "Disable emoji decoration")
	noMarkdown    = flag.Bool("no-markdown", false, "Disable emphasis")
	noSuggestions = flag.Bool("no-suggestions", false, "Skip follow-up suggestions")
	plain         = flag.Bool("plain", false, "Print chunks without markdown rendering")
	width         = flag.Int("width", 80, "Word wrap width")
)

func main() {
	flag.Parse()

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
			os.Exit(1)
		}
		text = string(b)
	}

	opts := formatting.DefaultOptions()
	opts.MaxChunkLength = *maxChunk
	opts.EnableEmojis = !*noEmoji
	opts.EnableMarkdown = !*noMarkdown

	render := func(s string) string { return s + "\n" }
	if !*plain {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(*width),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "markdown renderer unavailable, printing plain text: %v\n", err)
		} else {
			render = func(s string) string {
				out, err := r.Render(s)
				if err != nil {
					return s + "\n"
				}
				return out
			}
		}
	}

	preview(os.Stdout, text, opts, !*noSuggestions, render)
}

// preview writes the formatted reply to w. render turns one chunk into
// terminal output.
func preview(w io.Writer, text string, opts formatting.Options, includeSuggestions bool, render func(string) string) {
	msg := formatting.Format(text, opts, includeSuggestions)

	for i, chunk := range msg.Chunks {
		fmt.Fprintf(w, "── chunk %d/%d (%d chars, %s)\n", i+1, len(msg.Chunks), uniseg.GraphemeClusterCount(chunk), msg.Direction)
		fmt.Fprint(w, render(chunk))
	}

	if len(msg.Suggestions) > 0 {
		fmt.Fprintf(w, "── suggestions (%s)\n", msg.SuggestionSource)
		for _, s := range msg.Suggestions {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}

	if q := location.Resolve(text, false); q != nil {
		fmt.Fprintf(w, "── map\n  %s\n  %s\n", *q, location.SearchURL(*q, nil))
	}
}
