package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"phpsniff/internal/index"
	"phpsniff/internal/token"
)

// TokenOutput is one token in a JSON dump.
type TokenOutput struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Text    string `json:"text"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	Partner *int   `json:"partner,omitempty"`
	Parens  *int   `json:"parenthesis_opener,omitempty"`
}

// kindWidth is the widest kind name in toks, for column alignment.
func kindWidth(toks []token.Token) int {
	w := 0
	for _, tok := range toks {
		w = max(w, runewidth.StringWidth(tok.Kind.String()))
	}
	return w
}

// FormatTokensPretty prints one token per line. idx may be nil when the
// stream did not index; partners are shown otherwise.
func FormatTokensPretty(w io.Writer, toks []token.Token, idx *index.Index) error {
	kw := kindWidth(toks)
	iw := len(strconv.Itoa(len(toks)))
	for i, tok := range toks {
		kind := runewidth.FillRight(tok.Kind.String(), kw)
		if _, err := fmt.Fprintf(w, "%*d: %s %4d:%-3d %q", iw, i, kind, tok.Line, tok.Col, tok.Text); err != nil {
			return err
		}
		if idx != nil {
			if p, ok := partner(idx, i); ok {
				fmt.Fprintf(w, " -> %d", p)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the stream as a JSON array.
func FormatTokensJSON(w io.Writer, toks []token.Token, idx *index.Index) error {
	output := make([]TokenOutput, 0, len(toks))
	for i, tok := range toks {
		out := TokenOutput{
			Index: i,
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Line:  tok.Line,
			Col:   tok.Col,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
		if idx != nil {
			if p, ok := partner(idx, i); ok {
				out.Partner = &p
			}
			if o, _, ok := idx.ParenthesisOf(i); ok {
				out.Parens = &o
			}
		}
		output = append(output, out)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func partner(idx *index.Index, i int) (int, bool) {
	p, err := idx.PartnerOf(i)
	if err != nil || p < 0 {
		return 0, false
	}
	return p, true
}
