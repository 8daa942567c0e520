package token

import (
	"golang.org/x/text/cases"
)

var keywordNames = map[Kind]string{
	Abstract:   "ABSTRACT",
	Array:      "ARRAY",
	As:         "AS",
	Break:      "BREAK",
	Callable:   "CALLABLE",
	Case:       "CASE",
	Catch:      "CATCH",
	Class:      "CLASS",
	Clone:      "CLONE",
	Const:      "CONST",
	Continue:   "CONTINUE",
	Declare:    "DECLARE",
	Default:    "DEFAULT",
	Do:         "DO",
	Echo:       "ECHO",
	Else:       "ELSE",
	Elseif:     "ELSEIF",
	Empty:      "EMPTY",
	Enum:       "ENUM",
	Extends:    "EXTENDS",
	Final:      "FINAL",
	Finally:    "FINALLY",
	Fn:         "FN",
	For:        "FOR",
	Foreach:    "FOREACH",
	Function:   "FUNCTION",
	Global:     "GLOBAL",
	Goto:       "GOTO",
	If:         "IF",
	Implements: "IMPLEMENTS",
	Include:    "INCLUDE",
	Instanceof: "INSTANCEOF",
	Insteadof:  "INSTEADOF",
	Interface:  "INTERFACE",
	Isset:      "ISSET",
	List:       "LIST",
	Match:      "MATCH",
	Namespace:  "NAMESPACE",
	New:        "NEW",
	Print:      "PRINT",
	Private:    "PRIVATE",
	Protected:  "PROTECTED",
	Public:     "PUBLIC",
	Readonly:   "READONLY",
	Require:    "REQUIRE",
	Return:     "RETURN",
	Static:     "STATIC",
	Switch:     "SWITCH",
	Throw:      "THROW",
	Trait:      "TRAIT",
	Try:        "TRY",
	Unset:      "UNSET",
	Use:        "USE",
	Var:        "VAR",
	While:      "WHILE",
	Yield:      "YIELD",
}

var keywords = func() map[string]Kind {
	out := make(map[string]Kind, len(keywordNames)+2)
	fold := cases.Fold()
	for k, name := range keywordNames {
		out[fold.String(name)] = k
	}
	// aliases that share a kind
	out["include_once"] = Include
	out["require_once"] = Require
	return out
}()

// LookupKeyword reports the keyword kind for ident. PHP keywords are
// case-insensitive, so "FOREACH" and "Foreach" both resolve to Foreach.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[cases.Fold().String(ident)]
	return k, ok
}
