package a11y

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Finding is a button that assistive technology cannot name.
type Finding struct {
	Index int    // position among the buttons of the file, from 1
	Child string // first child element, lowercased by the HTML parser
	Class string
}

// Audit lists buttons with neither an aria-label nor any text content. Component markup
// is parsed leniently as HTML, so expressions in braces count as text and element names
// lose their case; the result is advisory.
func Audit(content string) ([]Finding, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, &AuditError{Cause: err}
	}

	var findings []Finding
	doc.Find("button").Each(func(i int, s *goquery.Selection) {
		if _, ok := s.Attr(labelAttr); ok {
			return
		}
		if _, ok := s.Attr("aria-labelledby"); ok {
			return
		}
		if strings.TrimSpace(s.Text()) != "" {
			return
		}

		class, _ := s.Attr("classname")
		f := Finding{Index: i + 1, Class: class}
		if child := s.Children().First(); child.Length() > 0 {
			f.Child = goquery.NodeName(child)
		}
		findings = append(findings, f)
	})

	return findings, nil
}
