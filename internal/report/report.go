// Package report renders a dataset profile as a human readable document.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"datasight/domain/chart"
	"datasight/domain/profile"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders the profile of the dataset called name
func Markdown(name string, p *profile.DatasetProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Data profile: %s\n\n", escape(name))
	if p == nil {
		b.WriteString("No analysis is available for this dataset.\n")
		return b.String()
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Rows | Columns | Missing values |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d |\n\n", p.Summary.RowCount, p.Summary.ColumnCount, p.Summary.TotalMissingCount)

	if len(p.Columns) > 0 {
		b.WriteString("## Columns\n\n")
		b.WriteString("| Column | Type | Missing | Unique | Min | Max | Mean | Std |\n")
		b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|\n")
		for _, c := range p.Columns {
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %s | %s | %s | %s |\n",
				escape(c.Name), c.Kind, c.MissingCount, c.UniqueCount,
				stat(c.Min), stat(c.Max), stat(c.Mean), stat(c.Std))
		}
		b.WriteString("\n")
	}

	if len(p.Insights) > 0 {
		b.WriteString("## Insights\n\n")
		for _, in := range p.Insights {
			fmt.Fprintf(&b, "- %s\n", escape(in))
		}
		b.WriteString("\n")
	}

	if len(p.Suggestions) > 0 {
		b.WriteString("## Suggested charts\n\n")
		for i, s := range p.Suggestions {
			fmt.Fprintf(&b, "%d. **%s** (`%s`): %s\n", i+1, escape(s.Title), s.Type, escape(bindings(s)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders the same report as a complete HTML page
func HTML(name string, p *profile.DatasetProfile) []byte {
	md := []byte(Markdown(name, p))

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	doc := parser.NewWithExtensions(extensions).Parse(md)

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.HrefTargetBlank | html.CompletePage,
		Title: "Data profile: " + name,
	})
	return markdown.Render(doc, renderer)
}

func bindings(s chart.Suggestion) string {
	switch s.Type.Binding() {
	case chart.BindingSingle:
		return s.Column
	case chart.BindingColumns:
		return strings.Join(s.Columns, ", ")
	default:
		return s.XColumn + " vs " + s.YColumn
	}
}

func stat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}

var escaper = strings.NewReplacer(
	`\`, `\\`, `|`, `\|`, `*`, `\*`, `_`, `\_`, "`", "\\`", `<`, `&lt;`, `>`, `&gt;`,
)

// escape keeps user supplied names from being read as markdown or markup
func escape(s string) string {
	return escaper.Replace(s)
}
