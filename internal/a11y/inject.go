// Package a11y patches component markup so icon buttons carry accessible labels and
// interactive elements declare a visible focus style.
//
// All passes are textual. The resulting markup is not re-validated.
package a11y

import (
	"regexp"
	"strings"

	"github.com/jonathan/wallet-maint/internal/rules"
)

const (
	labelAttr   = "aria-label"
	focusMarker = "focus:"
)

var (
	buttonClassPattern = regexp.MustCompile(`(<button[^>]*className="[^"]*?)(")`)
	fieldClassPattern  = regexp.MustCompile(`(<(?:input|textarea)\b[^>]*className="[^"]*?)(")`)
)

// Stats counts the attributes injected into one piece of content.
type Stats struct {
	Labels     int
	Focus      int
	FieldFocus int
}

// Total is the number of injected attributes across all passes.
func (s Stats) Total() int {
	return s.Labels + s.Focus + s.FieldFocus
}

type labelRule struct {
	pattern *regexp.Regexp
	label   string
}

// Injector applies the label and focus passes.
type Injector struct {
	labels      []labelRule
	buttonFocus string
	fieldFocus  string
	fields      bool
}

// New compiles the label table of a rule set. When fields is set, Inject also adds the
// field focus style to input and textarea elements.
func New(set *rules.Set, fields bool) (*Injector, error) {
	in := &Injector{
		buttonFocus: set.Focus.Buttons,
		fieldFocus:  set.Focus.Fields,
		fields:      fields,
	}

	for _, l := range set.Labels {
		// The icon must directly follow the opening tag and be a whole component name.
		re, err := regexp.Compile(`(<button[^>]*)(>\s*<(?:` + l.Icon + `) className)`)
		if err != nil {
			return nil, &PatternError{Icon: l.Icon, Cause: err}
		}
		in.labels = append(in.labels, labelRule{pattern: re, label: l.Label})
	}

	return in, nil
}

// Inject runs the label pass and then the focus passes over content. The passes are
// independent, so one button may gain both a label and a focus style. Elements that
// already declare aria-label or a focus: class are left alone, which makes a second run
// a no-op.
func (in *Injector) Inject(content string) (string, Stats) {
	var stats Stats

	for _, l := range in.labels {
		attr := ` ` + labelAttr + `="` + l.label + `"`
		var n int
		content, n = patch(content, l.pattern, func(tag string) (string, bool) {
			if strings.Contains(tag, labelAttr) {
				return "", false
			}
			return tag + attr, true
		})
		stats.Labels += n
	}

	if in.buttonFocus != "" {
		content, stats.Focus = patch(content, buttonClassPattern, appendClasses(in.buttonFocus))
	}
	if in.fields && in.fieldFocus != "" {
		content, stats.FieldFocus = patch(content, fieldClassPattern, appendClasses(in.fieldFocus))
	}

	return content, stats
}

// appendClasses returns an edit that extends an unterminated class attribute value,
// unless the tag already mentions a focus state.
func appendClasses(classes string) func(string) (string, bool) {
	return func(prefix string) (string, bool) {
		if strings.Contains(prefix, focusMarker) {
			return "", false
		}
		if strings.HasSuffix(prefix, `"`) {
			return prefix + classes, true
		}
		return prefix + " " + classes, true
	}
}

// patch rewrites the first capture group of every match of re for which edit reports a
// change, keeping the rest of the match. It returns the new content and the number of
// edits.
func patch(content string, re *regexp.Regexp, edit func(string) (string, bool)) (string, int) {
	matches := re.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}

	var sb strings.Builder
	sb.Grow(len(content))

	last, count := 0, 0
	for _, m := range matches {
		start, end := m[2], m[3]
		replacement, ok := edit(content[start:end])
		if !ok {
			continue
		}
		sb.WriteString(content[last:start])
		sb.WriteString(replacement)
		last = end
		count++
	}
	if count == 0 {
		return content, 0
	}
	sb.WriteString(content[last:])

	return sb.String(), count
}
