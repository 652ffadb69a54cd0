package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(_ context.Context, in Input) ([]byte, error) {
	md, err := Markdown(in)
	if err != nil {
		return nil, err
	}
	return []byte(md), nil
}

func (MarkdownRenderer) ContentType() string { return "text/markdown; charset=utf-8" }
func (MarkdownRenderer) Extension() string   { return "md" }

// Markdown renders the decision report as GitHub-flavoured Markdown.
func Markdown(in Input) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}

	date := in.GeneratedAt.Format("January 2, 2006")
	var b strings.Builder

	b.WriteString("# Decision Analysis Report\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", inline(in.DecisionName))
	fmt.Fprintf(&b, "Generated on: %s\n\n", date)

	b.WriteString("## Decision Summary\n\n")
	fmt.Fprintf(&b, "- **Decision:** %s\n", inline(in.DecisionName))
	fmt.Fprintf(&b, "- **Date Analyzed:** %s\n", date)
	fmt.Fprintf(&b, "- **Criteria:** %d\n", len(in.Criteria))
	fmt.Fprintf(&b, "- **Options:** %d\n\n", len(in.Options))

	b.WriteString("## Criteria Weights\n\n")
	b.WriteString("| Criterion | Weight | Share | Preference | Range |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for i, share := range scoring.WeightShares(in.Criteria) {
		c := in.Criteria[i]
		fmt.Fprintf(&b, "| %s | %s%% | %s%% | %s | %s |\n",
			cell(c.Name), number(c.Weight), strconv.FormatFloat(share.Percent, 'f', 1, 64), c.Direction.Label(), c.RangeLabel())
	}
	b.WriteString("\n")

	b.WriteString("## Options Evaluated\n\n")
	b.WriteString("| Option Name" + criteriaHeader(in.Criteria) + " |\n")
	b.WriteString("|---" + strings.Repeat("|---", len(in.Criteria)) + "|\n")
	for _, o := range in.Options {
		fmt.Fprintf(&b, "| %s%s |\n", cell(o.Name), valueCells(in.Criteria, o.Values))
	}
	b.WriteString("\n")

	b.WriteString("## Analysis Results\n\n")
	b.WriteString("| Rank | Option | Score" + criteriaHeader(in.Criteria) + " |\n")
	b.WriteString("|---|---|---" + strings.Repeat("|---", len(in.Criteria)) + "|\n")
	for i, r := range in.Results {
		fmt.Fprintf(&b, "| %d | %s | %s points%s |\n", i+1, cell(r.Name), number(r.Score), valueCells(in.Criteria, r.Values))
	}
	b.WriteString("\n")

	best := in.Results[0]
	b.WriteString("## Recommendation\n\n")
	fmt.Fprintf(&b, "> **Best Option:** %s (Score: %s points)\n>\n", inline(best.Name), number(best.Score))
	b.WriteString("> **Why this is the best choice:**\n>\n")
	fmt.Fprintf(&b, "> - %s scored highest across all evaluated criteria\n", inline(best.Name))
	if keys := keyCriteria(in.Criteria, 2); keys != "" {
		fmt.Fprintf(&b, "> - It meets or exceeds expectations in key areas: %s\n", keys)
	}
	b.WriteString("> - The weighted scoring system confirms this as the optimal choice\n")
	b.WriteString("> - Consider verifying the final decision with stakeholders if needed\n\n")

	b.WriteString("---\n\n*Report generated by Decide*\n")
	return b.String(), nil
}

func criteriaHeader(criteria []scoring.Criterion) string {
	var b strings.Builder
	for _, c := range criteria {
		b.WriteString(" | ")
		b.WriteString(cell(c.Name))
	}
	return b.String()
}

// valueCells renders one cell per criterion, N/A where nothing was entered.
func valueCells(criteria []scoring.Criterion, values scoring.Values) string {
	var b strings.Builder
	for _, c := range criteria {
		b.WriteString(" | ")
		if values.Has(c.Name) {
			b.WriteString(number(values.Get(c.Name)))
		} else {
			b.WriteString("N/A")
		}
	}
	return b.String()
}

func keyCriteria(criteria []scoring.Criterion, n int) string {
	if len(criteria) < n {
		n = len(criteria)
	}
	names := make([]string, 0, n)
	for _, c := range criteria[:n] {
		names = append(names, inline(c.Name))
	}
	return strings.Join(names, ", ")
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", `\<`, "#", `\#`,
	"\r\n", " ", "\n", " ",
)

// inline escapes Markdown syntax in user text.
func inline(s string) string {
	return inlineEscaper.Replace(s)
}

// cell is inline plus pipe escaping for table cells.
func cell(s string) string {
	return strings.ReplaceAll(inline(s), "|", `\|`)
}
