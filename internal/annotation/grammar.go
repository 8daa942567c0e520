package annotation

import (
	"regexp"
	"strings"
)

// typeExpr is one bare type or several joined by "|", "&" or ",", each
// separator optionally surrounded by whitespace.
const typeExpr = `(?:\S+(?:\s*[,&|]\s*\S+)+)|\S+`

var (
	varCanonical = regexp.MustCompile(`^(` + typeExpr + `)\s+(\$\S+)(?:\s+(.+))?$`)
	varReversed  = regexp.MustCompile(`^(\$\S+)\s+(` + typeExpr + `)(?:\s+(.+))?$`)

	paramCanonical = regexp.MustCompile(`^(` + typeExpr + `)\s+(&?(?:\.\.\.)?\$\S+)(?:\s+(.+))?$`)
	paramReversed  = regexp.MustCompile(`^(&?(?:\.\.\.)?\$\S+)\s+(` + typeExpr + `)(?:\s+(.+))?$`)

	returnForm = regexp.MustCompile(`^(` + typeExpr + `)(?:\s+(.+))?$`)
	methodForm = regexp.MustCompile(`^(?:(static)\s+)?(?:(` + typeExpr + `)\s+)?(\w+)\s*\(([^)]*)\)(?:\s+(.+))?$`)

	whitespace = regexp.MustCompile(`\s`)
)

// parseContent fills a from the text following the tag.
func parseContent(tag, content string) Annotation {
	content = strings.TrimSpace(content)
	a := Annotation{Tag: tag, Position: -1, Content: content}
	switch tag {
	case TagVar, TagProperty, TagPropertyRead, TagPropertyWrite:
		parseTyped(&a, varCanonical, varReversed)
	case TagParam:
		parseTyped(&a, paramCanonical, paramReversed)
	case TagReturn:
		if m := returnForm.FindStringSubmatch(content); m != nil {
			a.Type, a.Description, a.Valid = m[1], m[2], true
		}
	case TagMethod:
		if m := methodForm.FindStringSubmatch(content); m != nil {
			a.Static = m[1] != ""
			a.Type = m[2]
			a.Method = m[3]
			a.Parameters = strings.TrimSpace(m[4])
			a.Description = m[5]
			a.Valid = true
		}
	}
	return a
}

func parseTyped(a *Annotation, canonical, reversed *regexp.Regexp) {
	if m := canonical.FindStringSubmatch(a.Content); m != nil {
		a.Type = m[1]
		a.setVariable(m[2])
		a.Description = m[3]
		a.Valid = true
		return
	}
	if m := reversed.FindStringSubmatch(a.Content); m != nil {
		a.setVariable(m[1])
		a.Type = m[2]
		a.Description = m[3]
		a.Valid = true
		a.Reversed = true
		a.NeedsReorder = !whitespace.MatchString(m[2])
	}
}

func (a *Annotation) setVariable(raw string) {
	if rest, ok := strings.CutPrefix(raw, "&"); ok {
		a.ByReference = true
		raw = rest
	}
	if rest, ok := strings.CutPrefix(raw, "..."); ok {
		a.Variadic = true
		raw = rest
	}
	a.Variable = strings.TrimPrefix(raw, "$")
}
