package lexer

// DefaultMaxTokenLength bounds a single token; longer input is rejected as a LexError.
const DefaultMaxTokenLength = 1 << 20

type Options struct {
	// MaxTokenLength overrides DefaultMaxTokenLength when positive.
	MaxTokenLength int
}

func (o Options) maxTokenLength() int {
	if o.MaxTokenLength > 0 {
		return o.MaxTokenLength
	}
	return DefaultMaxTokenLength
}
