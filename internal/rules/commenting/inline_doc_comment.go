// Package commenting holds rules about comments and doc comments.
package commenting

import (
	"fmt"
	"regexp"
	"strings"

	"phpsniff/internal/annotation"
	"phpsniff/internal/fix"
	"phpsniff/internal/index"
	"phpsniff/internal/query"
	"phpsniff/internal/rule"
	"phpsniff/internal/token"
)

const (
	InlineDocCommentDeclarationName = "Commenting.InlineDocCommentDeclaration"

	CodeInvalidFormat      = "InvalidFormat"
	CodeInvalidCommentType = "InvalidCommentType"
	CodeMissingVariable    = "MissingVariable"
	CodeNoAssignment       = "NoAssignment"
)

var (
	plainVarComment = regexp.MustCompile(`^/\*\s*@var\s+`)

	// statements an inline @var may document
	documentedKinds = token.NewSet(token.Variable, token.Foreach, token.While, token.List, token.OpenShortArray)
	asKind          = token.NewSet(token.As)
)

// InlineDocCommentDeclaration checks inline "@var Type $name" comments: they
// must be doc comments, use the canonical order and sit next to an
// assignment to the variable they name. Property doc blocks are left alone.
type InlineDocCommentDeclaration struct{}

func (InlineDocCommentDeclaration) Name() string { return InlineDocCommentDeclarationName }

func (InlineDocCommentDeclaration) Register() []token.Kind {
	return []token.Kind{token.DocCommentOpen, token.Comment}
}

func (r InlineDocCommentDeclaration) Process(ctx *rule.Context, open int) error {
	idx := ctx.Index
	closer := open
	if idx.Kind(open) == token.DocCommentOpen {
		var err error
		if closer, err = idx.PartnerOf(open); err != nil {
			return err
		}
	}

	code, hasCode := query.FindFirstNonWhitespaceOnNextLine(idx, closer)
	if hasCode && isPropertyStart(idx, code) {
		return nil
	}

	if err := r.checkFormat(ctx, open, closer); err != nil {
		return err
	}
	if idx.Kind(open) != token.DocCommentOpen {
		return nil
	}
	if !hasCode {
		code = query.NoLimit
	}
	return r.checkVariable(ctx, open, code)
}

func isPropertyStart(idx *index.Index, pos int) bool {
	switch k := idx.Kind(pos); {
	case token.VisibilityKinds.Has(k):
		return true
	case k == token.Static:
		next, ok := query.FindNextEffective(idx, pos+1)
		return ok && token.VisibilityKinds.Has(idx.Kind(next))
	}
	return false
}

func (InlineDocCommentDeclaration) checkFormat(ctx *rule.Context, open, closer int) error {
	idx := ctx.Index
	var content string
	if idx.Kind(open) == token.Comment {
		text := idx.Text(open)
		if !plainVarComment.MatchString(text) {
			return nil
		}
		if ctx.AddFixableError(CodeInvalidCommentType, open,
			"Invalid comment type /* */ for inline documentation comment, use /** */.") {
			if err := ctx.ApplyFix(fix.Replace(open, "/**"+text[2:])); err != nil {
				return err
			}
		}
		content = strings.TrimSpace(strings.TrimSuffix(text[2:], "*/"))
	} else {
		content = strings.TrimSpace(query.Content(idx, open+1, closer-1))
	}

	if !strings.HasPrefix(content, annotation.TagVar) {
		return nil
	}
	a, ok := annotation.ParseLine(annotation.TagVar, content)
	if ok && a.Valid && !a.Reversed {
		return nil
	}

	if ok && a.NeedsReorder {
		desc := ""
		if a.Description != "" {
			desc = " " + a.Description
		}
		msg := fmt.Sprintf("Invalid inline documentation comment format \"%s\", expected \"@var %s %s%s\".",
			content, a.Type, a.VariableName(), desc)
		if !ctx.AddFixableError(CodeInvalidFormat, open, msg) {
			return nil
		}
		opener := "/**"
		if idx.Kind(open) == token.Comment {
			opener = "/*"
		}
		replacement := fmt.Sprintf("%s @var %s %s%s */", opener, a.Type, a.VariableName(), desc)
		return ctx.ApplyFix(fix.RewriteRange(open, closer, replacement)...)
	}

	ctx.AddError(CodeInvalidFormat, open,
		fmt.Sprintf("Invalid inline documentation comment format \"%s\", expected \"@var type $variable\".", content))
	return nil
}

func (InlineDocCommentDeclaration) checkVariable(ctx *rule.Context, open, code int) error {
	idx := ctx.Index
	annotations, err := annotation.Parse(idx, open, annotation.TagVar)
	if err != nil || len(annotations) == 0 {
		return err
	}

	if code == query.NoLimit || !documentedKinds.Has(idx.Kind(code)) {
		prev, ok := query.FindFirstNonWhitespaceOnPreviousLine(idx, open)
		code = query.NoLimit
		if ok && documentedKinds.Has(idx.Kind(prev)) {
			code = prev
		}
	}

	for _, a := range annotations {
		if !a.Valid || a.Variable == "" {
			continue
		}
		name := a.VariableName()
		missing := func() {
			ctx.AddError(CodeMissingVariable, open,
				fmt.Sprintf("Missing variable %s before or after the documentation comment.", name))
		}
		noAssignment := func() {
			ctx.AddError(CodeNoAssignment, open,
				fmt.Sprintf("No assignment to %s variable before or after the documentation comment.", name))
		}

		if code == query.NoLimit {
			missing()
			continue
		}

		switch idx.Kind(code) {
		case token.Variable:
			if !followedByEqual(idx, code) {
				noAssignment()
				continue
			}
			if idx.Text(code) != name {
				missing()
			}

		case token.List:
			opener, closer, ok := idx.ParenthesisOf(code)
			if !ok {
				missing()
				continue
			}
			if _, found := query.FindNextContent(idx, token.Variable, name, opener+1, closer); !found {
				missing()
			}

		case token.OpenShortArray:
			closer, err := idx.PartnerOf(code)
			if err != nil {
				return err
			}
			if !followedByEqual(idx, closer) {
				noAssignment()
				continue
			}
			if _, found := query.FindNextContent(idx, token.Variable, name, code+1, closer); !found {
				missing()
			}

		case token.While:
			opener, closer, ok := idx.ParenthesisOf(code)
			if !ok {
				missing()
				continue
			}
			v, found := query.FindNextContent(idx, token.Variable, name, opener+1, closer)
			if !found {
				missing()
				continue
			}
			if !followedByEqual(idx, v) {
				noAssignment()
			}

		case token.Foreach:
			opener, closer, ok := idx.ParenthesisOf(code)
			if !ok {
				missing()
				continue
			}
			as, found := query.FindNext(idx, asKind, opener+1, closer)
			if !found {
				missing()
				continue
			}
			if _, found := query.FindNextContent(idx, token.Variable, name, as+1, closer); !found {
				missing()
			}
		}
	}
	return nil
}

// followedByEqual reports whether the first code token after pos is "=".
func followedByEqual(idx *index.Index, pos int) bool {
	next, ok := query.FindNextEffective(idx, pos+1)
	return ok && idx.Kind(next) == token.Equal
}
