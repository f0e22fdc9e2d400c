package main

import (
	"fmt"
	"os"

	"github.com/jonathan/wallet-maint/internal/a11y"
	"github.com/jonathan/wallet-maint/internal/rewrite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addAriaCmd = &cobra.Command{
	Use:   "add-aria",
	Short: "Add aria-label attributes and focus styles to buttons",
	Long: `Patch component markup in two independent passes:

  1. buttons whose first child is a known icon get the icon's aria-label, unless they
     already declare one;
  2. buttons with a className lacking any focus: class get the focus ring classes.

With --fields, input and textarea elements get the field focus classes as well.
With --audit, the files are scanned afterwards for buttons that still have no
accessible name.`,
	RunE: runAddAria,
}

var (
	ariaFields    bool
	ariaAudit     bool
	ariaDryRun    bool
	ariaRecursive bool
)

func init() {
	addAriaCmd.Flags().BoolVar(&ariaFields, "fields", false, "Also add focus styles to input and textarea elements")
	addAriaCmd.Flags().BoolVar(&ariaAudit, "audit", false, "List buttons without an accessible name after patching")
	addRewriteFlags(addAriaCmd, &ariaDryRun, &ariaRecursive)

	rootCmd.AddCommand(addAriaCmd)
}

func runAddAria(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)

	set, err := loadRuleSet()
	if err != nil {
		return err
	}
	injector, err := a11y.New(set, ariaFields)
	if err != nil {
		return err
	}

	files, err := targetFiles(ariaRecursive)
	if err != nil {
		return err
	}

	p.Banner("Accessibility attributes")
	p.Info("Scanning %d files in %s", len(files), cfg.ComponentsDir)

	patched := make(map[string]string)
	summary := rewrite.Run(files, func(path, content string) (string, int) {
		out, stats := injector.Inject(content)
		if stats.Total() > 0 {
			p.OK("%s: %d labels, %d focus styles", path, stats.Labels, stats.Focus+stats.FieldFocus)
		}
		patched[path] = out
		return out, stats.Total()
	}, rewrite.Options{DryRun: ariaDryRun, Logger: logger})

	err = reportSummary(p, "Accessibility summary", "attributes", summary, ariaDryRun)

	if ariaAudit {
		if auditErr := auditFiles(cmd, files, patched); auditErr != nil && err == nil {
			err = auditErr
		}
	}
	return err
}

// auditFiles scans the patched content of each file (the file itself when it was not
// processed) for buttons without an accessible name.
func auditFiles(cmd *cobra.Command, files []string, patched map[string]string) error {
	p := newPrinter(cmd)
	p.Section("Buttons without an accessible name")

	total := 0
	for _, path := range files {
		content, ok := patched[path]
		if !ok {
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("skipping audit", zap.String("path", path), zap.Error(err))
				continue
			}
			content = string(data)
		}

		findings, err := a11y.Audit(content)
		if err != nil {
			logger.Warn("skipping audit", zap.String("path", path), zap.Error(err))
			continue
		}
		for _, f := range findings {
			total++
			detail := "empty"
			if f.Child != "" {
				detail = "icon <" + f.Child + ">"
			}
			p.Warn("%s: button #%d (%s)", path, f.Index, detail)
		}
	}

	if total == 0 {
		p.OK("Every button has an accessible name")
		return nil
	}
	p.Info("%d button(s) need a label; add them to the rules file or by hand", total)
	return fmt.Errorf("%d button(s) without an accessible name", total)
}
