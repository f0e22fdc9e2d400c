package main

import (
	"fmt"
	"sort"

	"github.com/jonathan/wallet-maint/internal/iconify"
	"github.com/jonathan/wallet-maint/internal/rewrite"
	"github.com/spf13/cobra"
)

var replaceEmojiCmd = &cobra.Command{
	Use:   "replace-emoji",
	Short: "Replace presentation emoji in component markup with icon components",
	Long: `Replace emoji glyphs that sit in markup text with icon components, for example
">✅ Done<" becomes "><CheckCircle2 className="w-4 h-4" /> Done<".

--mode line (default) works line by line and skips lines that look like comments or
logging calls. --mode file applies only the ">G<" and ">G " rules to the whole file.
Glyphs inside quoted strings are never replaced. Skipping is heuristic.

The icon components used are listed at the end; imports are not managed.`,
	RunE: runReplaceEmoji,
}

var (
	emojiMode      string
	emojiDryRun    bool
	emojiRecursive bool
)

func init() {
	replaceEmojiCmd.Flags().StringVar(&emojiMode, "mode", "line", "Replacement mode: line or file")
	addRewriteFlags(replaceEmojiCmd, &emojiDryRun, &emojiRecursive)

	rootCmd.AddCommand(replaceEmojiCmd)
}

func runReplaceEmoji(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)

	set, err := loadRuleSet()
	if err != nil {
		return err
	}
	rewriter := iconify.New(set)

	var apply func(string) (string, iconify.Stats)
	switch emojiMode {
	case "line":
		apply = rewriter.RewriteLines
	case "file":
		apply = rewriter.RewriteBuffer
	default:
		return fmt.Errorf("invalid --mode %q (want line or file)", emojiMode)
	}

	files, err := targetFiles(emojiRecursive)
	if err != nil {
		return err
	}

	p.Banner("Emoji to icon replacement (" + emojiMode + " mode)")
	p.Info("Scanning %d files in %s", len(files), cfg.ComponentsDir)

	used := make(map[string]bool)
	summary := rewrite.Run(files, func(path, content string) (string, int) {
		out, stats := apply(content)
		if stats.Substitutions > 0 {
			p.OK("%s: %d replacements", path, stats.Substitutions)
		}
		for _, icon := range stats.Icons {
			used[icon] = true
		}
		return out, stats.Substitutions
	}, rewrite.Options{DryRun: emojiDryRun, Logger: logger})

	err = reportSummary(p, "Emoji replacement summary", "replacements", summary, emojiDryRun)

	if len(used) > 0 {
		icons := make([]string, 0, len(used))
		for icon := range used {
			icons = append(icons, icon)
		}
		sort.Strings(icons)
		p.Blank()
		p.Section("Icons required")
		for _, icon := range icons {
			p.Info("%s", icon)
		}
	}

	return err
}
