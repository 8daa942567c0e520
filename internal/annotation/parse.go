package annotation

import (
	"fmt"
	"strings"

	"phpsniff/internal/index"
	"phpsniff/internal/token"
)

// NotDocCommentError is returned when Parse is pointed at anything but "/**".
type NotDocCommentError struct {
	Index int
	Kind  token.Kind
}

func (e *NotDocCommentError) Error() string {
	return fmt.Sprintf("token %d (%s) does not open a doc comment", e.Index, e.Kind)
}

// Parse returns the annotations named tag inside the doc comment opened at
// docOpen, in source order. An empty tag returns every tag the parser knows.
func Parse(idx *index.Index, docOpen int, tag string) ([]Annotation, error) {
	tok, err := idx.Get(docOpen)
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.DocCommentOpen {
		return nil, &NotDocCommentError{Index: docOpen, Kind: tok.Kind}
	}
	closer, err := idx.PartnerOf(docOpen)
	if err != nil {
		return nil, err
	}

	var out []Annotation
	for i := docOpen + 1; i < closer; i++ {
		t := idx.At(i)
		if t.Kind != token.DocCommentTag {
			continue
		}
		if tag == "" && !Known(t.Text) || tag != "" && t.Text != tag {
			continue
		}
		a := parseContent(t.Text, lineContent(idx, i, closer))
		a.Position = i
		out = append(out, a)
	}
	return out, nil
}

// lineContent is the text after the tag at pos on the same line.
func lineContent(idx *index.Index, pos, closer int) string {
	var sb strings.Builder
	for i := pos + 1; i < closer; i++ {
		t := idx.At(i)
		if t.Kind == token.DocCommentTag || t.IsNewline() {
			break
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// ParseLine parses a free-standing "@tag content" line, as found in a
// plain /* */ comment. ok is false when the line does not start with tag.
func ParseLine(tag, line string) (a Annotation, ok bool) {
	line = strings.TrimSpace(line)
	rest, found := strings.CutPrefix(line, tag)
	if !found {
		return Annotation{}, false
	}
	if rest != "" && !whitespace.MatchString(rest[:1]) {
		return Annotation{}, false
	}
	return parseContent(tag, rest), true
}
