// Package testkit holds structural checks shared by tests across packages.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"phpsniff/internal/index"
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

// CheckStreamInvariants verifies that toks tile sf exactly:
// 1) spans are contiguous, start at 0 and end at len(content)
// 2) every token's text equals the content under its span
// 3) line and column agree with the file's line index
func CheckStreamInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var off uint32
	var sb strings.Builder
	for i, t := range toks {
		if t.Span.Start != off {
			return fmt.Errorf("token %d (%s) starts at %d, want %d", i, t.Kind, t.Span.Start, off)
		}
		if t.Span.End < t.Span.Start || t.Span.End > lenContent {
			return fmt.Errorf("token %d (%s) has bad span %v", i, t.Kind, t.Span)
		}
		if got := string(sf.Content[t.Span.Start:t.Span.End]); got != t.Text {
			return fmt.Errorf("token %d (%s) text %q differs from source %q", i, t.Kind, t.Text, got)
		}
		pos := sf.Position(t.Span.Start)
		if int(pos.Line) != t.Line || int(pos.Col) != t.Col {
			return fmt.Errorf("token %d (%s) at %d:%d, line index says %d:%d", i, t.Kind, t.Line, t.Col, pos.Line, pos.Col)
		}
		sb.WriteString(t.Text)
		off = t.Span.End
	}
	if off != lenContent {
		return fmt.Errorf("tokens end at %d, content has %d bytes", off, lenContent)
	}
	if sb.String() != string(sf.Content) {
		return fmt.Errorf("concatenated tokens differ from content")
	}
	return nil
}

// CheckIndexInvariants verifies structural metadata:
// 1) partners are symmetric and pair an opener with its own family's closer
// 2) every parenthesis owner points at a "(" whose partner is the recorded closer
// 3) Enclosing returns an opener whose span contains the position
func CheckIndexInvariants(idx *index.Index) error {
	if idx == nil {
		return fmt.Errorf("nil index")
	}
	for i := 0; i < idx.Len(); i++ {
		k := idx.Kind(i)
		if family, opener := k.Structure(); family != token.FamilyNone {
			p, err := idx.PartnerOf(i)
			if err != nil {
				return fmt.Errorf("token %d (%s): %w", i, k, err)
			}
			back, err := idx.PartnerOf(p)
			if err != nil || back != i {
				return fmt.Errorf("partner of %d is %d, but partner of %d is %d", i, p, p, back)
			}
			pf, popener := idx.Kind(p).Structure()
			if pf != family || popener == opener {
				return fmt.Errorf("token %d (%s) paired with %d (%s)", i, k, p, idx.Kind(p))
			}
		}
		if open, closeAt, ok := idx.ParenthesisOf(i); ok {
			if idx.Kind(open) != token.OpenParenthesis {
				return fmt.Errorf("owner %d (%s) points at %s", i, k, idx.Kind(open))
			}
			if p, _ := idx.PartnerOf(open); p != closeAt {
				return fmt.Errorf("owner %d (%s) closer %d, partner says %d", i, k, closeAt, p)
			}
		}
		if enc, ok := idx.Enclosing(i); ok {
			closer, _ := idx.PartnerOf(enc)
			if enc >= i || closer <= i {
				return fmt.Errorf("token %d not inside its enclosing pair %d..%d", i, enc, closer)
			}
		}
	}
	return nil
}
