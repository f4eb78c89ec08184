package formatting

// DefaultMaxChunkLength is the chunk budget, in user-perceived characters,
// used when no positive override is given.
const DefaultMaxChunkLength = 300

// Options toggles the individual formatting stages. The zero value disables
// every optional stage; use DefaultOptions for the standard pipeline.
type Options struct {
	EnableMarkdown bool `json:"enableMarkdown" yaml:"enable_markdown"`
	EnableEmojis   bool `json:"enableEmojis" yaml:"enable_emojis"`
	MaxChunkLength int  `json:"maxChunkLength" yaml:"max_chunk_length"`
	AddLineBreaks  bool `json:"addLineBreaks" yaml:"add_line_breaks"`
	CleanSymbols   bool `json:"cleanSymbols" yaml:"clean_symbols"`
}

// DefaultOptions returns the standard pipeline: every stage on, 300
// characters per chunk.
func DefaultOptions() Options {
	return Options{
		EnableMarkdown: true,
		EnableEmojis:   true,
		MaxChunkLength: DefaultMaxChunkLength,
		AddLineBreaks:  true,
		CleanSymbols:   true,
	}
}

// Overrides carries a partial set of options, typically decoded from a
// request body. Nil fields keep the base value.
type Overrides struct {
	EnableMarkdown *bool `json:"enableMarkdown,omitempty"`
	EnableEmojis   *bool `json:"enableEmojis,omitempty"`
	MaxChunkLength *int  `json:"maxChunkLength,omitempty" validate:"omitempty,min=1,max=10000"`
	AddLineBreaks  *bool `json:"addLineBreaks,omitempty"`
	CleanSymbols   *bool `json:"cleanSymbols,omitempty"`
}

// Merge returns o with every non-nil field of ov applied on top.
func (o Options) Merge(ov *Overrides) Options {
	if ov == nil {
		return o
	}
	if ov.EnableMarkdown != nil {
		o.EnableMarkdown = *ov.EnableMarkdown
	}
	if ov.EnableEmojis != nil {
		o.EnableEmojis = *ov.EnableEmojis
	}
	if ov.MaxChunkLength != nil {
		o.MaxChunkLength = *ov.MaxChunkLength
	}
	if ov.AddLineBreaks != nil {
		o.AddLineBreaks = *ov.AddLineBreaks
	}
	if ov.CleanSymbols != nil {
		o.CleanSymbols = *ov.CleanSymbols
	}
	return o
}

func (o Options) chunkLimit() int {
	if o.MaxChunkLength <= 0 {
		return DefaultMaxChunkLength
	}
	return o.MaxChunkLength
}
