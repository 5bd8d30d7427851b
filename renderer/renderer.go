package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderBalance renders the balance headline to a markdown string.
func RenderBalance(b *Balance) string {
	return renderTemplate("balance", "balance.md", nil, b)
}

// RenderTransactions renders a transaction listing to a markdown string.
func RenderTransactions(t *Transactions) string {
	partials := map[string]string{
		"transactions_table": "transactions_table.md",
	}
	return renderTemplate("transactions", "transactions.md", partials, t)
}

// RenderGoals renders the savings goals to a markdown string.
func RenderGoals(g *Goals) string {
	partials := map[string]string{
		"goals_table": "goals_table.md",
	}
	return renderTemplate("goals", "goals.md", partials, g)
}

// RenderSummary renders the ledger totals to a markdown string.
func RenderSummary(s *Summary) string {
	return renderTemplate("summary", "summary.md", nil, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// cell makes s safe to print inside a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
