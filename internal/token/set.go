package token

// Set is a fixed-size bit set of kinds.
type Set struct {
	bits [4]uint64
}

// NewSet returns a set holding kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s.bits[k>>6] |= 1 << (k & 63)
	}
	return s
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	return s.bits[k>>6]&(1<<(k&63)) != 0
}

// Union returns the kinds in s or other.
func (s Set) Union(other Set) Set {
	for i := range s.bits {
		s.bits[i] |= other.bits[i]
	}
	return s
}

// Empty reports whether the set has no kinds.
func (s Set) Empty() bool {
	return s.bits == [4]uint64{}
}

// Kinds returns the members in ascending order.
func (s Set) Kinds() []Kind {
	var out []Kind
	for k := 0; k < 256; k++ {
		if s.Has(Kind(k)) {
			out = append(out, Kind(k))
		}
	}
	return out
}

var (
	// EmptyKinds holds whitespace and all comment kinds.
	EmptyKinds = NewSet(Whitespace, Comment, DocCommentOpen, DocCommentClose, DocCommentStar,
		DocCommentWhitespace, DocCommentTag, DocCommentString)
	// WhitespaceKinds holds code and doc-comment whitespace.
	WhitespaceKinds = NewSet(Whitespace, DocCommentWhitespace)
	// VisibilityKinds holds member visibility modifiers.
	VisibilityKinds = NewSet(Public, Protected, Private)
	// NameKinds holds the tokens that make up a (possibly qualified) name.
	NameKinds = NewSet(String, NsSeparator)
)
