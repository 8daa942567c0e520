package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input. It is never part of an index.
	EOF

	// InlineHTML is text outside of <?php ... ?>.
	InlineHTML
	// OpenTag is "<?php" plus the single whitespace character that follows it.
	OpenTag
	// OpenTagWithEcho is "<?=".
	OpenTagWithEcho
	// CloseTag is "?>".
	CloseTag

	// Whitespace is a run of blanks, ending at (and including) a newline.
	Whitespace
	// Comment is a //, # or /* */ comment.
	Comment
	// DocCommentOpen is "/**".
	DocCommentOpen
	// DocCommentClose is "*/" closing a doc comment.
	DocCommentClose
	// DocCommentStar is a leading "*" inside a doc comment line.
	DocCommentStar
	// DocCommentWhitespace is whitespace inside a doc comment.
	DocCommentWhitespace
	// DocCommentTag is an "@tag" inside a doc comment.
	DocCommentTag
	// DocCommentString is free text inside a doc comment.
	DocCommentString

	// Variable is "$name".
	Variable
	// String is a bare identifier (class, function, constant name).
	String
	// Dollar is a lone "$" (variable variables).
	Dollar
	// NsSeparator is "\".
	NsSeparator

	// ConstantString is a single-quoted string literal.
	ConstantString
	// DoubleQuotedString is a double-quoted string literal.
	DoubleQuotedString
	// Heredoc is a heredoc or nowdoc literal including its delimiters.
	Heredoc
	// Backtick is a shell-exec literal.
	Backtick
	// LNumber is an integer literal.
	LNumber
	// DNumber is a float literal.
	DNumber

	// OpenParenthesis is "(".
	OpenParenthesis
	// CloseParenthesis is ")".
	CloseParenthesis
	// OpenSquareBracket is "[" used for element access.
	OpenSquareBracket
	// CloseSquareBracket is "]" closing element access.
	CloseSquareBracket
	// OpenShortArray is "[" opening an array literal or destructuring pattern.
	OpenShortArray
	// CloseShortArray is "]" closing an array literal or destructuring pattern.
	CloseShortArray
	// OpenCurlyBracket is "{".
	OpenCurlyBracket
	// CloseCurlyBracket is "}".
	CloseCurlyBracket
	// AttributeOpen is "#[".
	AttributeOpen
	// AttributeClose is "]" closing an attribute.
	AttributeClose

	// Equal is "=".
	Equal
	// Semicolon is ";".
	Semicolon
	// Comma is ",".
	Comma
	// Colon is ":".
	Colon
	// DoubleColon is "::".
	DoubleColon
	// ObjectOperator is "->".
	ObjectOperator
	// NullsafeObjectOperator is "?->".
	NullsafeObjectOperator
	// DoubleArrow is "=>".
	DoubleArrow
	// Ampersand is "&".
	Ampersand
	// Ellipsis is "...".
	Ellipsis
	// Question is "?".
	Question
	// Operator covers every other operator ("+", "===", "??=", ...).
	Operator

	keywordStart

	Abstract
	Array
	As
	Break
	Callable
	Case
	Catch
	Class
	Clone
	Const
	Continue
	Declare
	Default
	Do
	Echo
	Else
	Elseif
	Empty
	Enum
	Extends
	Final
	Finally
	Fn
	For
	Foreach
	Function
	Global
	Goto
	If
	Implements
	Include
	Instanceof
	Insteadof
	Interface
	Isset
	List
	Match
	Namespace
	New
	Print
	Private
	Protected
	Public
	Readonly
	Require
	Return
	Static
	Switch
	Throw
	Trait
	Try
	Unset
	Use
	Var
	While
	Yield

	keywordEnd
)

var kindNames = [...]string{
	Invalid:                "INVALID",
	EOF:                    "EOF",
	InlineHTML:             "T_INLINE_HTML",
	OpenTag:                "T_OPEN_TAG",
	OpenTagWithEcho:        "T_OPEN_TAG_WITH_ECHO",
	CloseTag:               "T_CLOSE_TAG",
	Whitespace:             "T_WHITESPACE",
	Comment:                "T_COMMENT",
	DocCommentOpen:         "T_DOC_COMMENT_OPEN_TAG",
	DocCommentClose:        "T_DOC_COMMENT_CLOSE_TAG",
	DocCommentStar:         "T_DOC_COMMENT_STAR",
	DocCommentWhitespace:   "T_DOC_COMMENT_WHITESPACE",
	DocCommentTag:          "T_DOC_COMMENT_TAG",
	DocCommentString:       "T_DOC_COMMENT_STRING",
	Variable:               "T_VARIABLE",
	String:                 "T_STRING",
	Dollar:                 "T_DOLLAR",
	NsSeparator:            "T_NS_SEPARATOR",
	ConstantString:         "T_CONSTANT_ENCAPSED_STRING",
	DoubleQuotedString:     "T_DOUBLE_QUOTED_STRING",
	Heredoc:                "T_HEREDOC",
	Backtick:               "T_BACKTICK",
	LNumber:                "T_LNUMBER",
	DNumber:                "T_DNUMBER",
	OpenParenthesis:        "T_OPEN_PARENTHESIS",
	CloseParenthesis:       "T_CLOSE_PARENTHESIS",
	OpenSquareBracket:      "T_OPEN_SQUARE_BRACKET",
	CloseSquareBracket:     "T_CLOSE_SQUARE_BRACKET",
	OpenShortArray:         "T_OPEN_SHORT_ARRAY",
	CloseShortArray:        "T_CLOSE_SHORT_ARRAY",
	OpenCurlyBracket:       "T_OPEN_CURLY_BRACKET",
	CloseCurlyBracket:      "T_CLOSE_CURLY_BRACKET",
	AttributeOpen:          "T_ATTRIBUTE",
	AttributeClose:         "T_ATTRIBUTE_END",
	Equal:                  "T_EQUAL",
	Semicolon:              "T_SEMICOLON",
	Comma:                  "T_COMMA",
	Colon:                  "T_COLON",
	DoubleColon:            "T_DOUBLE_COLON",
	ObjectOperator:         "T_OBJECT_OPERATOR",
	NullsafeObjectOperator: "T_NULLSAFE_OBJECT_OPERATOR",
	DoubleArrow:            "T_DOUBLE_ARROW",
	Ampersand:              "T_BITWISE_AND",
	Ellipsis:               "T_ELLIPSIS",
	Question:               "T_INLINE_THEN",
	Operator:               "T_OPERATOR",
}

// String returns the PHP_CodeSniffer-style name of the kind (T_VARIABLE, T_USE, ...).
func (k Kind) String() string {
	if k.IsKeyword() {
		return "T_" + keywordNames[k]
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// IsEmpty reports whether tokens of kind k carry no code: whitespace and
// every kind of comment token.
func (k Kind) IsEmpty() bool {
	switch k {
	case Whitespace, Comment, DocCommentOpen, DocCommentClose, DocCommentStar,
		DocCommentWhitespace, DocCommentTag, DocCommentString:
		return true
	default:
		return false
	}
}

// IsWhitespace reports whether k is code or doc-comment whitespace.
func (k Kind) IsWhitespace() bool {
	return k == Whitespace || k == DocCommentWhitespace
}

// Family identifies the structural pair a kind belongs to.
type Family uint8

const (
	// FamilyNone marks kinds that are not structural.
	FamilyNone Family = iota
	FamilyParenthesis
	FamilySquareBracket
	FamilyShortArray
	FamilyCurlyBracket
	FamilyAttribute
	FamilyDocComment
)

// Structure reports the structural family of k and whether k opens it.
func (k Kind) Structure() (family Family, opener bool) {
	switch k {
	case OpenParenthesis:
		return FamilyParenthesis, true
	case CloseParenthesis:
		return FamilyParenthesis, false
	case OpenSquareBracket:
		return FamilySquareBracket, true
	case CloseSquareBracket:
		return FamilySquareBracket, false
	case OpenShortArray:
		return FamilyShortArray, true
	case CloseShortArray:
		return FamilyShortArray, false
	case OpenCurlyBracket:
		return FamilyCurlyBracket, true
	case CloseCurlyBracket:
		return FamilyCurlyBracket, false
	case AttributeOpen:
		return FamilyAttribute, true
	case AttributeClose:
		return FamilyAttribute, false
	case DocCommentOpen:
		return FamilyDocComment, true
	case DocCommentClose:
		return FamilyDocComment, false
	default:
		return FamilyNone, false
	}
}

// IsStructural reports whether k opens or closes a structural pair.
func (k Kind) IsStructural() bool {
	f, _ := k.Structure()
	return f != FamilyNone
}
