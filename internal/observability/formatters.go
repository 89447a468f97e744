// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/logiscareer/candidate-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEvaluation outputs a human-readable summary of an evaluation result.
func (p *Printer) PrintEvaluation(result *types.EvaluationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Decision:   %s\n", result.Decision))

	if result.IsRejected {
		sb.WriteString(fmt.Sprintf("Rule:       %s\n", result.RejectionRuleCode))
		sb.WriteString(fmt.Sprintf("Reason:     %s\n", result.RejectionReason))
		p.printBox("Evaluation Result", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Score:      %d/100 (base %d)\n", result.TotalScore, result.BaseScore))
	if result.Confidence != nil {
		sb.WriteString(fmt.Sprintf("Confidence: %s (%.2f)\n", result.Confidence.Level, result.Confidence.ConfidenceScore))
	}
	sb.WriteString(fmt.Sprintf("Profile:    %s\n", result.WeightProfile))
	sb.WriteString("\n")

	sections := make([]string, 0, len(result.SectionScores))
	for name := range result.SectionScores {
		sections = append(sections, name)
	}
	sort.Strings(sections)
	for _, name := range sections {
		ss := result.SectionScores[name]
		sb.WriteString(fmt.Sprintf("%-12s %3d  (weight %.2f)\n", name, ss.Score, ss.Weight))
	}

	p.printBox("Evaluation Result", sb.String())

	if len(result.Adjustments) > 0 {
		var adj strings.Builder
		for i, a := range result.Adjustments {
			if i >= maxItemsToShow {
				adj.WriteString(fmt.Sprintf("... and %d more\n", len(result.Adjustments)-maxItemsToShow))
				break
			}
			adj.WriteString(fmt.Sprintf("%+.1f  %s\n", a.Points, a.RuleName))
		}
		p.printBox("Adjustments", adj.String())
	}

	if len(result.Interactions) > 0 {
		var inter strings.Builder
		for _, fi := range result.Interactions {
			inter.WriteString(fmt.Sprintf("%+.1f  %s\n", fi.Impact, fi.InteractionID))
		}
		p.printBox("Interactions", inter.String())
	}
}
