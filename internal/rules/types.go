// Package rules defines the ordered rule tables that drive the markup rewriters.
// Each table is data, not code: adding a glyph or an icon label never needs a new branch.
package rules

// DefaultIconClass is the size class given to every generated icon component.
const DefaultIconClass = "w-4 h-4"

// IconRule maps a presentation glyph to an icon component.
type IconRule struct {
	Glyph string `yaml:"glyph"`
	Icon  string `yaml:"icon"`
	Class string `yaml:"class,omitempty"`
}

// LabelRule maps an icon component (a regular-expression fragment matched against the
// component name, e.g. "Edit2?") to the accessible label its button should carry.
type LabelRule struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
}

// Guards are the heuristics that exclude lines from emoji replacement. They are
// best-effort text matches, not a parse of the markup language.
type Guards struct {
	CommentPrefixes []string `yaml:"comment_prefixes,omitempty"`
	LogCalls        []string `yaml:"log_calls,omitempty"`
}

// Focus holds the token sequences appended to class attributes lacking a focus style.
type Focus struct {
	Buttons string `yaml:"buttons,omitempty"`
	Fields  string `yaml:"fields,omitempty"`
}

// Set is a complete rule configuration.
type Set struct {
	Icons  []IconRule  `yaml:"icons,omitempty"`
	Labels []LabelRule `yaml:"labels,omitempty"`
	Guards Guards      `yaml:"guards,omitempty"`
	Focus  Focus       `yaml:"focus,omitempty"`
}

// file is the on-disk shape of a rule file.
type file struct {
	ReplaceDefaults bool        `yaml:"replace_defaults"`
	IconClass       string      `yaml:"icon_class"`
	Icons           []IconRule  `yaml:"icons"`
	Labels          []LabelRule `yaml:"labels"`
	Guards          Guards      `yaml:"guards"`
	Focus           Focus       `yaml:"focus"`
}

// IconNames returns the distinct icon component names in table order.
func (s *Set) IconNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range s.Icons {
		if !seen[r.Icon] {
			seen[r.Icon] = true
			names = append(names, r.Icon)
		}
	}
	return names
}
