package rules

// ButtonFocusStyle is appended to button class attributes without a focus style.
const ButtonFocusStyle = "focus:outline-none focus:ring-2 focus:ring-orange-500 focus:ring-offset-2"

// FieldFocusStyle is appended to input and textarea class attributes without a focus style.
const FieldFocusStyle = "focus:outline-none focus:ring-2 focus:ring-orange-500 focus:border-transparent"

// Default returns the built-in rule tables. The returned Set is a fresh copy.
func Default() *Set {
	icons := make([]IconRule, len(defaultIcons))
	for i, e := range defaultIcons {
		icons[i] = IconRule{Glyph: e[0], Icon: e[1], Class: DefaultIconClass}
	}

	labels := make([]LabelRule, len(defaultLabels))
	for i, e := range defaultLabels {
		labels[i] = LabelRule{Icon: e[0], Label: e[1]}
	}

	return &Set{
		Icons:  icons,
		Labels: labels,
		Guards: Guards{
			CommentPrefixes: []string{"//", "/*", "*", "{/*"},
			LogCalls: []string{
				"console.log",
				"console.error",
				"console.warn",
				"console.info",
				"console.debug",
			},
		},
		Focus: Focus{
			Buttons: ButtonFocusStyle,
			Fields:  FieldFocusStyle,
		},
	}
}

// glyph → icon component
var defaultIcons = [][2]string{
	{"⚡", "Zap"},
	{"✅", "CheckCircle2"},
	{"❌", "XCircle"},
	{"💰", "DollarSign"},
	{"🔥", "Flame"},
	{"📊", "BarChart3"},
	{"🎯", "Target"},
	{"⏳", "Clock"},
	{"🚫", "Ban"},
	{"📅", "Calendar"},
	{"🔒", "Lock"},
	{"⚙️", "Settings"},
	{"🔍", "Search"},
	{"💡", "Lightbulb"},
	{"📱", "Smartphone"},
	{"💬", "MessageCircle"},
	{"📧", "Mail"},
	{"⏰", "AlarmClock"},
	{"🎁", "Gift"},
	{"🏆", "Trophy"},
	{"🌟", "Star"},
	{"⭐", "Star"},
	{"💎", "Gem"},
	{"📈", "TrendingUp"},
	{"📉", "TrendingDown"},
	{"🔔", "Bell"},
	{"💵", "Banknote"},
	{"📋", "ClipboardList"},
	{"⚠️", "AlertTriangle"},
	{"✨", "Sparkles"},
	{"🚀", "Rocket"},
	{"🎨", "Palette"},
	{"📝", "FileEdit"},
}

// icon component pattern → accessible label
var defaultLabels = [][2]string{
	{"X", "Close"},
	{"Settings", "Open settings"},
	{"User", "Open profile"},
	{"Copy", "Copy to clipboard"},
	{"Check", "Confirm"},
	{"RefreshCw", "Refresh"},
	{"Edit2?", "Edit"},
	{"Trash2?", "Delete"},
	{"Plus", "Add"},
	{"Menu", "Open menu"},
	{"ExternalLink", "Open in new tab"},
}
