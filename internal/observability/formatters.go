// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/relomatcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the questionnaire profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if len(profile.LanguagesSpoken) > 0 {
		sb.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(profile.LanguagesSpoken, ", ")))
	}

	if len(profile.Reasons) > 0 {
		sb.WriteString("Priorities:\n")
		count := min(len(profile.Reasons), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Reasons[i]))
		}
		if len(profile.Reasons) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Reasons)-maxItemsToShow))
		}
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTopMatches outputs the top ranked destinations with their strongest dimensions.
func (p *Printer) PrintTopMatches(winners []types.RankedCandidate) {
	if len(winners) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total destinations ranked: %d\n\n", len(winners)))

	count := min(len(winners), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := winners[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, m.Name, m.Code))
		sb.WriteString(fmt.Sprintf("    Score: %.2f/10  Net income: %.0f%%\n", m.TotalScore, m.NetIncomePercent))
		if top := topDimensions(m.Breakdown, 3); top != "" {
			sb.WriteString(fmt.Sprintf("    Strongest: %s\n", top))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(winners) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more destinations", len(winners)-maxItemsToShow))
	}

	p.printBox("TOP MATCHES", sb.String())
}

// PrintDisqualified outputs the strongest candidates removed by hard rules.
func (p *Printer) PrintDisqualified(disqualified []types.DisqualifiedCandidate) {
	if len(disqualified) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO DISQUALIFIED CANDIDATES")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, d := range disqualified {
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)  base score %.2f/10\n", d.Name, d.Code, d.BaseScore))
		reason := d.Reason
		if len(reason) > 50 {
			reason = reason[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", reason))
		if i < len(disqualified)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DISQUALIFIED", strings.TrimSuffix(sb.String(), "\n"))
}

// topDimensions returns the n highest-scoring dimensions as "name 9.1, name 8.4".
func topDimensions(breakdown types.DimensionBreakdown, n int) string {
	type dim struct {
		name  string
		value float64
	}
	dims := make([]dim, 0, len(breakdown))
	for name, value := range breakdown {
		dims = append(dims, dim{name, value})
	}
	sort.Slice(dims, func(i, j int) bool {
		if dims[i].value != dims[j].value {
			return dims[i].value > dims[j].value
		}
		return dims[i].name < dims[j].name
	})

	if len(dims) > n {
		dims = dims[:n]
	}
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		parts = append(parts, fmt.Sprintf("%s %.1f", d.name, d.value))
	}
	return strings.Join(parts, ", ")
}
