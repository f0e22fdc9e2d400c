// Package iconify replaces presentation emoji in component markup with icon components.
//
// Matching is textual. Lines are skipped when they look like comments or logging calls,
// and glyphs inside quoted string literals are left alone; both checks are heuristics
// that can over- or under-skip, since no markup or script grammar is parsed.
package iconify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/wallet-maint/internal/rules"
)

// Stats describes the substitutions made in one piece of content.
type Stats struct {
	Substitutions int
	Icons         []string // sorted, distinct
}

// Rewriter applies an icon table to markup.
type Rewriter struct {
	table   []rules.IconRule
	byGlyph map[string]rules.IconRule
	pattern *regexp.Regexp
	guards  rules.Guards
}

// New builds a Rewriter from a rule set. Later entries for a glyph already in the
// table are ignored.
func New(set *rules.Set) *Rewriter {
	r := &Rewriter{
		byGlyph: make(map[string]rules.IconRule),
		guards:  set.Guards,
	}

	for _, ir := range set.Icons {
		if ir.Glyph == "" {
			continue
		}
		if _, ok := r.byGlyph[ir.Glyph]; ok {
			continue
		}
		if ir.Class == "" {
			ir.Class = rules.DefaultIconClass
		}
		r.byGlyph[ir.Glyph] = ir
		r.table = append(r.table, ir)
	}

	r.pattern = glyphPattern(r.table)
	return r
}

// glyphPattern builds an alternation of every glyph, longest first, so multi-codepoint
// sequences such as "⚙️" win over any shorter prefix.
func glyphPattern(table []rules.IconRule) *regexp.Regexp {
	if len(table) == 0 {
		return nil
	}

	glyphs := make([]string, 0, len(table))
	for _, ir := range table {
		glyphs = append(glyphs, ir.Glyph)
	}
	sort.SliceStable(glyphs, func(i, j int) bool {
		return len(glyphs[i]) > len(glyphs[j])
	})

	quoted := make([]string, len(glyphs))
	for i, g := range glyphs {
		quoted[i] = regexp.QuoteMeta(g)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// component renders the icon element for a rule.
func component(ir rules.IconRule) string {
	return fmt.Sprintf(`<%s className="%s" />`, ir.Icon, ir.Class)
}

// SkipLine reports whether a line looks like a comment or a logging call.
func (r *Rewriter) SkipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range r.guards.CommentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	for _, call := range r.guards.LogCalls {
		if strings.Contains(line, call) {
			return true
		}
	}
	return false
}

// RewriteLines is the line-based variant. Each eligible line is scanned left to right;
// for every glyph occurrence the first template present in the line is applied once:
//
//	>G<   becomes  ><Icon className="c" /><
//	>G    becomes  ><Icon className="c" />   (glyph followed by a space)
//	 G<   becomes   <Icon className="c" /><  (glyph preceded by a space)
//	"G"   is left untouched, as is 'G'
//
// Line endings are preserved byte for byte.
func (r *Rewriter) RewriteLines(content string) (string, Stats) {
	if r.pattern == nil {
		return content, Stats{}
	}

	used := make(map[string]bool)
	subs := 0

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if line == "" || r.SkipLine(line) {
			continue
		}

		matches := r.pattern.FindAllString(line, -1)
		if len(matches) == 0 {
			continue
		}

		current := line
		for _, glyph := range matches {
			ir := r.byGlyph[glyph]
			next, ok := applyFirstTemplate(current, glyph, component(ir))
			if !ok {
				continue
			}
			current = next
			subs++
			used[ir.Icon] = true
		}
		lines[i] = current
	}

	return strings.Join(lines, ""), Stats{Substitutions: subs, Icons: sortedKeys(used)}
}

// applyFirstTemplate tries the contextual templates in priority order and applies the
// first whose literal occurs in line. Quoted occurrences match no template, so
// intentional display text survives.
func applyFirstTemplate(line, glyph, icon string) (string, bool) {
	templates := []struct {
		literal     string
		replacement string
	}{
		{">" + glyph + "<", ">" + icon + "<"},
		{">" + glyph + " ", ">" + icon + " "},
		{" " + glyph + "<", " " + icon + "<"},
	}

	for _, tpl := range templates {
		if strings.Contains(line, tpl.literal) {
			return strings.Replace(line, tpl.literal, tpl.replacement, 1), true
		}
	}
	return line, false
}

// RewriteBuffer is the whole-file variant. It applies, in table order, the literal
// rules >G< and >G␠ to the entire buffer and counts every match. Unlike RewriteLines
// it has no comment or logging guard; the leading '>' confines it to markup text.
func (r *Rewriter) RewriteBuffer(content string) (string, Stats) {
	used := make(map[string]bool)
	subs := 0

	for _, ir := range r.table {
		icon := component(ir)
		for _, rule := range [][2]string{
			{">" + ir.Glyph + "<", ">" + icon + "<"},
			{">" + ir.Glyph + " ", ">" + icon + " "},
		} {
			n := strings.Count(content, rule[0])
			if n == 0 {
				continue
			}
			content = strings.ReplaceAll(content, rule[0], rule[1])
			subs += n
			used[ir.Icon] = true
		}
	}

	return content, Stats{Substitutions: subs, Icons: sortedKeys(used)}
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
