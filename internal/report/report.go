// Package report renders a plain-language simplification result as a
// standalone HTML report. The structured summary gets dedicated sections;
// the raw markdown text is rendered through goldmark.
package report

import (
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
)

const pageHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
h1, h2 { color: #1a3c6e; }
.warning { background: #fff3cd; padding: 0.75rem; border-radius: 4px; }
</style>
</head>
<body>
`

// Render writes an HTML report for the simplification of documentName.
func Render(w io.Writer, documentName string,
	result *api.SimplifyResult) error {

	title := "Plain-Language Summary"
	if documentName != "" {
		title += ": " + documentName
	}

	if _, err := fmt.Fprintf(
		w, pageHeader, html.EscapeString(title),
	); err != nil {
		return err
	}

	fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(title))

	if result.Structured != nil {
		if err := renderStructured(w, result.Structured); err != nil {
			return err
		}
	}

	if result.RawText != "" {
		fmt.Fprintln(w, "<h2>Full Explanation</h2>")
		err := goldmark.Convert([]byte(result.RawText), w)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
	}

	if result.TranslatedText != "" {
		fmt.Fprintln(w, "<h2>Translation</h2>")
		fmt.Fprintf(w, "<p>%s</p>\n",
			html.EscapeString(result.TranslatedText))
	}

	_, err := fmt.Fprintln(w, "</body>\n</html>")
	return err
}

// renderStructured emits the machine-readable summary sections that are
// present.
func renderStructured(w io.Writer, s *api.StructuredSummary) error {
	if s.DocumentType != "" {
		fmt.Fprintf(w, "<p><strong>Document type:</strong> %s</p>\n",
			html.EscapeString(s.DocumentType))
	}

	if s.PlainEnglishSummary != "" {
		fmt.Fprintln(w, "<h2>Summary</h2>")
		fmt.Fprintf(w, "<p>%s</p>\n",
			html.EscapeString(s.PlainEnglishSummary))
	}

	sections := []struct {
		title string
		items []string
	}{
		{title: "Key Obligations", items: s.KeyObligations},
		{title: "What You Must Do Next", items: s.WhatYouMustDoNext},
		{title: "Deadlines", items: s.DeadlinesExtracted},
		{title: "Explained Step by Step",
			items: s.SimplifiedExplanation},
	}

	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}

		fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n", section.title)
		for _, item := range section.items {
			fmt.Fprintf(w, "<li>%s</li>\n",
				html.EscapeString(item))
		}
		fmt.Fprintln(w, "</ul>")
	}

	if s.OverallWarnings != "" {
		fmt.Fprintf(w, "<p class=\"warning\">%s</p>\n",
			html.EscapeString(s.OverallWarnings))
	}

	return nil
}
