// Package query holds stateless navigation over an index.Index.
//
// Absence is a normal outcome: every function returns (position, found)
// and never an error. Bounds are clamped to the stream, so an invalid
// start simply finds nothing.
package query

import (
	"strings"

	"phpsniff/internal/index"
	"phpsniff/internal/token"
)

// NoLimit as a bound means "to the end of the stream" (or its start,
// for backward searches).
const NoLimit = -1

var statementEnd = token.NewSet(token.Semicolon, token.CloseTag)

func upper(idx *index.Index, to int) int {
	if to < 0 || to > idx.Len() {
		return idx.Len()
	}
	return to
}

// FindNext returns the first position in [from, to) whose kind is in kinds.
func FindNext(idx *index.Index, kinds token.Set, from, to int) (int, bool) {
	to = upper(idx, to)
	toks := idx.Tokens()
	for i := max(from, 0); i < to; i++ {
		if kinds.Has(toks[i].Kind) {
			return i, true
		}
	}
	return NoLimit, false
}

// FindNextExcluding returns the first position in [from, to) whose kind is not in kinds.
func FindNextExcluding(idx *index.Index, kinds token.Set, from, to int) (int, bool) {
	to = upper(idx, to)
	toks := idx.Tokens()
	for i := max(from, 0); i < to; i++ {
		if !kinds.Has(toks[i].Kind) {
			return i, true
		}
	}
	return NoLimit, false
}

// FindNextContent is FindNext for a single kind with exact text.
func FindNextContent(idx *index.Index, kind token.Kind, text string, from, to int) (int, bool) {
	to = upper(idx, to)
	toks := idx.Tokens()
	for i := max(from, 0); i < to; i++ {
		if toks[i].Kind == kind && toks[i].Text == text {
			return i, true
		}
	}
	return NoLimit, false
}

// FindPrevious returns the last position in [to, from] whose kind is in kinds,
// scanning backwards from from.
func FindPrevious(idx *index.Index, kinds token.Set, from, to int) (int, bool) {
	toks := idx.Tokens()
	for i := min(from, len(toks)-1); i >= max(to, 0); i-- {
		if kinds.Has(toks[i].Kind) {
			return i, true
		}
	}
	return NoLimit, false
}

// FindPreviousExcluding returns the last position in [to, from] whose kind is not in kinds.
func FindPreviousExcluding(idx *index.Index, kinds token.Set, from, to int) (int, bool) {
	toks := idx.Tokens()
	for i := min(from, len(toks)-1); i >= max(to, 0); i-- {
		if !kinds.Has(toks[i].Kind) {
			return i, true
		}
	}
	return NoLimit, false
}

// FindPreviousContent is FindPrevious for a single kind with exact text.
func FindPreviousContent(idx *index.Index, kind token.Kind, text string, from, to int) (int, bool) {
	toks := idx.Tokens()
	for i := min(from, len(toks)-1); i >= max(to, 0); i-- {
		if toks[i].Kind == kind && toks[i].Text == text {
			return i, true
		}
	}
	return NoLimit, false
}

// FindNextEffective returns the first token at or after from that is
// neither whitespace nor a comment.
func FindNextEffective(idx *index.Index, from int) (int, bool) {
	return FindNextExcluding(idx, token.EmptyKinds, from, NoLimit)
}

// FindPreviousEffective returns the last code token at or before from.
func FindPreviousEffective(idx *index.Index, from int) (int, bool) {
	return FindPreviousExcluding(idx, token.EmptyKinds, from, NoLimit)
}

// FindNextLocal is FindNext bounded to the current statement: the search
// gives up at the first ";" or "?>" that is not itself wanted.
func FindNextLocal(idx *index.Index, kinds token.Set, from int) (int, bool) {
	toks := idx.Tokens()
	for i := max(from, 0); i < len(toks); i++ {
		k := toks[i].Kind
		if kinds.Has(k) {
			return i, true
		}
		if statementEnd.Has(k) {
			break
		}
	}
	return NoLimit, false
}

// FindFirstNonWhitespaceOnNextLine returns the first non-whitespace token
// that starts on a line after the one where the token at from ends.
// Blank lines in between are skipped.
func FindFirstNonWhitespaceOnNextLine(idx *index.Index, from int) (int, bool) {
	if !idx.Valid(from) {
		return NoLimit, false
	}
	toks := idx.Tokens()
	line := toks[from].EndLine()
	for i := from + 1; i < len(toks); i++ {
		if toks[i].Line > line && !toks[i].Kind.IsWhitespace() {
			return i, true
		}
	}
	return NoLimit, false
}

// FindFirstNonWhitespaceOnPreviousLine returns the first non-whitespace
// token starting on the line directly above the token at from. A blank
// previous line yields nothing.
func FindFirstNonWhitespaceOnPreviousLine(idx *index.Index, from int) (int, bool) {
	if !idx.Valid(from) {
		return NoLimit, false
	}
	toks := idx.Tokens()
	target := toks[from].Line - 1
	found := NoLimit
	for i := from - 1; i >= 0 && toks[i].Line >= target; i-- {
		if toks[i].Line == target && !toks[i].Kind.IsWhitespace() {
			found = i
		}
	}
	return found, found != NoLimit
}

// FindEndOfStatement returns the ";" or "?>" ending the statement that
// contains from, skipping over nested brackets. When the enclosing block
// closes first, the last code token before that closer is returned.
func FindEndOfStatement(idx *index.Index, from int) (int, bool) {
	toks := idx.Tokens()
	last := NoLimit
	for i := max(from, 0); i < len(toks); i++ {
		k := toks[i].Kind
		if statementEnd.Has(k) {
			return i, true
		}
		if family, opener := k.Structure(); family != token.FamilyNone {
			if !opener {
				return last, last != NoLimit
			}
			closer, err := idx.PartnerOf(i)
			if err != nil {
				return NoLimit, false
			}
			i = closer
		}
		if !k.IsEmpty() {
			last = i
		}
	}
	return last, last != NoLimit
}

// Content concatenates the text of tokens in the inclusive range [from, to].
func Content(idx *index.Index, from, to int) string {
	toks := idx.Tokens()
	from = max(from, 0)
	to = min(to, len(toks)-1)
	var sb strings.Builder
	for i := from; i <= to; i++ {
		sb.WriteString(toks[i].Text)
	}
	return sb.String()
}
