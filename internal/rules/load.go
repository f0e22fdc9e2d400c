package rules

import (
	"os"
	"regexp"

	"github.com/jonathan/wallet-maint/internal/schemas"
	rulesschema "github.com/jonathan/wallet-maint/schemas"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML (or JSON) rule file, validates it against the rules schema and
// overlays it on the built-in tables. Entries whose glyph or icon already exists
// replace the built-in entry in place; new entries are appended, so file order
// extends the priority order. With replace_defaults the file's tables stand alone.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read", Cause: err}
	}
	return Parse(path, data)
}

// Parse is Load for content already in memory; name is used in errors.
func Parse(name string, data []byte) (*Set, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: name, Message: "failed to parse YAML", Cause: err}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if err := schemas.ValidateDocument(name, rulesschema.Rules, doc); err != nil {
		return nil, &LoadError{Path: name, Message: "does not match rules schema", Cause: err}
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Path: name, Message: "failed to decode rules", Cause: err}
	}

	set := merge(Default(), &f)

	for _, l := range set.Labels {
		if _, err := regexp.Compile(l.Icon); err != nil {
			return nil, &LoadError{Path: name, Message: "invalid icon pattern " + l.Icon, Cause: err}
		}
	}

	return set, nil
}

func merge(base *Set, f *file) *Set {
	class := f.IconClass
	if class == "" {
		class = DefaultIconClass
	}

	out := &Set{Guards: base.Guards, Focus: base.Focus}
	if !f.ReplaceDefaults {
		out.Icons = base.Icons
		out.Labels = base.Labels
	}

	for _, r := range f.Icons {
		if r.Class == "" {
			r.Class = class
		}
		out.Icons = upsertIcon(out.Icons, r)
	}
	for _, l := range f.Labels {
		out.Labels = upsertLabel(out.Labels, l)
	}

	if len(f.Guards.CommentPrefixes) > 0 {
		out.Guards.CommentPrefixes = f.Guards.CommentPrefixes
	}
	if len(f.Guards.LogCalls) > 0 {
		out.Guards.LogCalls = f.Guards.LogCalls
	}
	if f.Focus.Buttons != "" {
		out.Focus.Buttons = f.Focus.Buttons
	}
	if f.Focus.Fields != "" {
		out.Focus.Fields = f.Focus.Fields
	}

	return out
}

func upsertIcon(icons []IconRule, r IconRule) []IconRule {
	for i := range icons {
		if icons[i].Glyph == r.Glyph {
			icons[i] = r
			return icons
		}
	}
	return append(icons, r)
}

func upsertLabel(labels []LabelRule, l LabelRule) []LabelRule {
	for i := range labels {
		if labels[i].Icon == l.Icon {
			labels[i] = l
			return labels
		}
	}
	return append(labels, l)
}
