// Package index wraps a token stream into a positional array with
// precomputed structural links.
//
// An Index is immutable once built. Any edit to the source invalidates it;
// callers rebuild from fresh tokens instead of patching.
package index

import (
	"fmt"

	"fortio.org/safecast"

	"phpsniff/internal/token"
)

const none = -1

// Index is the addressable, structurally linked view of one token stream.
type Index struct {
	tokens  []token.Token
	partner []int32 // matching opener/closer, or none
	parent  []int32 // innermost enclosing opener, or none
	parens  []int32 // owner keyword -> its "(" , or none
}

// parenthesisOwners are keywords whose directly following "(" belongs to them.
var parenthesisOwners = token.NewSet(
	token.While, token.Foreach, token.For, token.If, token.Elseif, token.List, token.Array,
	token.Function, token.Fn, token.Catch, token.Switch, token.Match, token.Declare,
	token.Isset, token.Unset, token.Empty, token.Use,
)

// Build links every structural pair in O(N) with a stack.
// An unmatched or mismatched opener/closer yields *MalformedStructureError.
func Build(toks []token.Token) (*Index, error) {
	n := len(toks)
	if _, err := safecast.Conv[int32](n); err != nil {
		return nil, fmt.Errorf("index: %d tokens: %w", n, err)
	}
	idx := &Index{
		tokens:  toks,
		partner: make([]int32, n),
		parent:  make([]int32, n),
		parens:  make([]int32, n),
	}
	stack := make([]int32, 0, 32)
	for i := range toks {
		idx.partner[i] = none
		idx.parens[i] = none
		idx.parent[i] = none
		if len(stack) > 0 {
			idx.parent[i] = stack[len(stack)-1]
		}

		k := toks[i].Kind
		family, opener := k.Structure()
		if family == token.FamilyNone {
			continue
		}
		if opener {
			stack = append(stack, pos32(i))
			if k == token.OpenParenthesis {
				if owner := idx.parenthesisOwner(i); owner != none {
					idx.parens[owner] = pos32(i)
				}
			}
			continue
		}

		if len(stack) == 0 {
			return nil, idx.malformed(i, "closer without opener")
		}
		top := stack[len(stack)-1]
		if f, _ := toks[top].Kind.Structure(); f != family {
			return nil, idx.malformed(i, fmt.Sprintf("closer does not match %s opened on line %d", toks[top].Kind, toks[top].Line))
		}
		stack = stack[:len(stack)-1]
		idx.partner[top] = pos32(i)
		idx.partner[i] = top
		// a closer belongs to the same level as its opener
		idx.parent[i] = idx.parent[top]
	}
	if len(stack) > 0 {
		return nil, idx.malformed(int(stack[len(stack)-1]), "opener is never closed")
	}
	return idx, nil
}

// pos32 narrows a token position. Build has checked the stream length, so
// an overflow here is a bug.
func pos32(i int) int32 {
	v, err := safecast.Conv[int32](i)
	if err != nil {
		panic(fmt.Errorf("token position overflow: %w", err))
	}
	return v
}

func (idx *Index) malformed(i int, reason string) error {
	return &MalformedStructureError{Index: i, Kind: idx.tokens[i].Kind, Line: idx.tokens[i].Line, Reason: reason}
}

// parenthesisOwner finds the keyword owning the "(" at open. For
// "function name(" and "function &name(" the owner is the function keyword.
func (idx *Index) parenthesisOwner(open int) int32 {
	j := idx.prevCode(open)
	if j == none {
		return none
	}
	k := idx.tokens[j].Kind
	if k == token.String {
		f := idx.prevCode(j)
		if f != none && idx.tokens[f].Kind == token.Ampersand {
			f = idx.prevCode(f)
		}
		if f != none && idx.tokens[f].Kind == token.Function {
			return pos32(f)
		}
		return none
	}
	if parenthesisOwners.Has(k) {
		return pos32(j)
	}
	return none
}

func (idx *Index) prevCode(i int) int {
	for j := i - 1; j >= 0; j-- {
		if !idx.tokens[j].Kind.IsEmpty() {
			return j
		}
	}
	return none
}

// Len returns the number of tokens.
func (idx *Index) Len() int { return len(idx.tokens) }

// Tokens exposes the underlying slice. Callers must not modify it.
func (idx *Index) Tokens() []token.Token { return idx.tokens }

// Get returns the token at i.
func (idx *Index) Get(i int) (token.Token, error) {
	if i < 0 || i >= len(idx.tokens) {
		return token.Token{}, &OutOfRangeError{Index: i, Len: len(idx.tokens)}
	}
	return idx.tokens[i], nil
}

// At is Get for positions the caller already validated. It panics with
// *OutOfRangeError otherwise; the driver turns that into a rule error.
func (idx *Index) At(i int) token.Token {
	if i < 0 || i >= len(idx.tokens) {
		panic(&OutOfRangeError{Index: i, Len: len(idx.tokens)})
	}
	return idx.tokens[i]
}

// Valid reports whether i addresses a token.
func (idx *Index) Valid(i int) bool { return i >= 0 && i < len(idx.tokens) }

// Kind returns the kind at i, or token.Invalid when i is out of range.
func (idx *Index) Kind(i int) token.Kind {
	if !idx.Valid(i) {
		return token.Invalid
	}
	return idx.tokens[i].Kind
}

// Text returns the text at i, or "" when i is out of range.
func (idx *Index) Text(i int) string {
	if !idx.Valid(i) {
		return ""
	}
	return idx.tokens[i].Text
}

// PartnerOf returns the matching closer of an opener, or the opener of a closer.
func (idx *Index) PartnerOf(i int) (int, error) {
	if !idx.Valid(i) {
		return none, &OutOfRangeError{Index: i, Len: len(idx.tokens)}
	}
	p := idx.partner[i]
	if p == none {
		return none, &NotStructuralError{Index: i, Kind: idx.tokens[i].Kind}
	}
	return int(p), nil
}

// ParenthesisOf returns the parentheses owned by the keyword at owner,
// e.g. the "(" and ")" of "foreach (...)".
func (idx *Index) ParenthesisOf(owner int) (opener, closer int, ok bool) {
	if !idx.Valid(owner) || idx.parens[owner] == none {
		return none, none, false
	}
	opener = int(idx.parens[owner])
	return opener, int(idx.partner[opener]), true
}

// Enclosing returns the innermost opener whose pair strictly contains i.
func (idx *Index) Enclosing(i int) (int, bool) {
	if !idx.Valid(i) || idx.parent[i] == none {
		return none, false
	}
	return int(idx.parent[i]), true
}
