package config

import (
	"errors"
	"strings"

	"github.com/hbollon/go-edlib"

	"phpsniff/internal/rule"
)

// minSimilarity is the lowest Levenshtein similarity a suggestion needs.
const minSimilarity = 0.6

// SelectRules narrows reg to the configured rules. An unknown name comes
// back as *rule.UnknownRuleError with a suggestion filled in when a close
// match exists.
func (c *Config) SelectRules(reg *rule.Registry) (*rule.Registry, error) {
	sel, err := reg.Select(c.Rules)
	var unknown *rule.UnknownRuleError
	if errors.As(err, &unknown) {
		unknown.Suggestion = Suggest(unknown.Name, Candidates(reg))
	}
	return sel, err
}

// Candidates returns every name Select accepts for reg: full rule names and
// their category prefixes.
func Candidates(reg *rule.Registry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range reg.Names() {
		for _, n := range []string{name, category(name)} {
			if n != "" && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

func category(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return ""
}

// Suggest picks the candidate closest to name, or "" when none is close
// enough.
func Suggest(name string, candidates []string) string {
	best, bestScore := "", float32(0)
	lower := strings.ToLower(name)
	for _, c := range candidates {
		score, err := edlib.StringsSimilarity(lower, strings.ToLower(c), edlib.Levenshtein)
		if err != nil {
			continue
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < minSimilarity {
		return ""
	}
	return best
}
