// Package namespaces holds rules about namespace declarations and imports.
package namespaces

import (
	"fmt"
	"strings"

	"phpsniff/internal/fix"
	"phpsniff/internal/index"
	"phpsniff/internal/query"
	"phpsniff/internal/rule"
	"phpsniff/internal/token"
)

const (
	UseFromSameNamespaceName = "Namespaces.UseFromSameNamespace"

	CodeUseFromSameNamespace = "UseFromSameNamespace"
)

var (
	asKind         = token.NewSet(token.As)
	semicolonKind  = token.NewSet(token.Semicolon)
	namespaceKind  = token.NewSet(token.Namespace)
	classLikeKinds = token.NewSet(token.Class, token.Trait, token.Interface, token.Enum)
	// a class-like body is found before any of these when walking back from "{"
	bodyStopKinds = token.NewSet(token.Semicolon, token.OpenCurlyBracket, token.CloseCurlyBracket, token.Function, token.Fn, token.Namespace)
)

// UseFromSameNamespace reports imports of a name that lives directly in the
// current namespace, where the import is a no-op. The fix deletes the
// statement and the line break after it.
type UseFromSameNamespace struct{}

func (UseFromSameNamespace) Name() string { return UseFromSameNamespaceName }

func (UseFromSameNamespace) Register() []token.Kind { return []token.Kind{token.Use} }

func (UseFromSameNamespace) Process(ctx *rule.Context, usePos int) error {
	idx := ctx.Index
	if isClosureUse(idx, usePos) || isTraitUse(idx, usePos) {
		return nil
	}

	namespace := currentNamespace(idx, usePos)
	used, ok := importedName(idx, usePos)
	if !ok || !strings.HasPrefix(used, namespace) {
		return nil
	}
	if _, aliased := query.FindNextLocal(idx, asKind, usePos+1); aliased {
		return nil
	}

	rest := used[len(namespace):]
	if namespace != "" && !strings.HasPrefix(rest, `\`) {
		return nil
	}
	if strings.Contains(strings.TrimPrefix(rest, `\`), `\`) {
		return nil
	}

	msg := fmt.Sprintf("Use %s is from the same namespace – that is prohibited.", used)
	if !ctx.AddFixableError(CodeUseFromSameNamespace, usePos, msg) {
		return nil
	}
	semi, ok := query.FindNext(idx, semicolonKind, usePos, query.NoLimit)
	if !ok {
		return nil
	}
	end := min(semi+1, idx.Len()-1)
	return ctx.ApplyFix(fix.RewriteRange(usePos, end, "")...)
}

// isClosureUse matches "function () use ($x)".
func isClosureUse(idx *index.Index, usePos int) bool {
	prev, ok := query.FindPreviousEffective(idx, usePos-1)
	return ok && idx.Kind(prev) == token.CloseParenthesis
}

// isTraitUse matches "use" directly inside a class, trait, interface or
// enum body.
func isTraitUse(idx *index.Index, usePos int) bool {
	body, ok := idx.Enclosing(usePos)
	if !ok || idx.Kind(body) != token.OpenCurlyBracket {
		return false
	}
	for i := body - 1; i >= 0; i-- {
		k := idx.Kind(i)
		switch {
		case classLikeKinds.Has(k):
			return true
		case bodyStopKinds.Has(k):
			return false
		case k == token.CloseParenthesis:
			// new class(...) extends Base {
			open, err := idx.PartnerOf(i)
			if err != nil {
				return false
			}
			i = open
		}
	}
	return false
}

// currentNamespace is the name declared by the closest "namespace" before
// pos, without a leading separator. The global namespace is "".
func currentNamespace(idx *index.Index, pos int) string {
	ns, ok := query.FindPrevious(idx, namespaceKind, pos, query.NoLimit)
	if !ok {
		return ""
	}
	name, ok := readName(idx, ns+1)
	if !ok {
		return ""
	}
	return name
}

// importedName is the fully qualified name of the first import in the
// statement, skipping "use function" and "use const". Group imports
// ("use A\{B, C}") yield false.
func importedName(idx *index.Index, usePos int) (string, bool) {
	start, ok := query.FindNextEffective(idx, usePos+1)
	if !ok {
		return "", false
	}
	if k := idx.Kind(start); k == token.Function || k == token.Const {
		start++
	}
	name, ok := readName(idx, start)
	if !ok || strings.HasSuffix(name, `\`) {
		return "", false
	}
	return name, true
}

// readName reads the name starting at the first code token at or after
// from and strips a leading separator.
func readName(idx *index.Index, from int) (string, bool) {
	start, ok := query.FindNextEffective(idx, from)
	if !ok || !token.NameKinds.Has(idx.Kind(start)) {
		return "", false
	}
	end, ok := query.FindNextExcluding(idx, token.NameKinds, start+1, query.NoLimit)
	if !ok {
		end = idx.Len()
	}
	return strings.TrimPrefix(query.Content(idx, start, end-1), `\`), true
}
