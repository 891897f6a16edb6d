package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/born-ml/bijector/internal/check"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	stylePass   = lipgloss.NewStyle().Foreground(colorGreen).Padding(0, 1)
	styleFail   = lipgloss.NewStyle().Foreground(colorRed).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

// renderReport formats a check report as a table followed by failure details.
func renderReport(r *check.Report) string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		status := iconSuccess
		if !res.Passed {
			status = iconError
		}
		jac := "-"
		if res.Elementwise {
			jac = fmt.Sprintf("%.2e", res.MaxJacobianErr)
		}
		rows = append(rows, []string{
			status,
			res.Name,
			fmt.Sprint(res.Shape),
			fmt.Sprintf("%.2e", res.MaxRoundTripErr),
			fmt.Sprintf("%.2e", res.MeanRoundTripErr),
			jac,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Transform", "Shape", "Max round trip", "Mean round trip", "Max jacobian").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 && row < len(r.Results) {
				if r.Results[row].Passed {
					return stylePass
				}
				return styleFail
			}
			return styleCell
		})

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Transform check (%d samples, tolerance %.0e)", r.Samples, r.Tolerance)))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	for _, res := range r.Results {
		for _, msg := range res.Messages {
			fmt.Fprintf(&b, "%s %s: %s\n", styleFail.UnsetPadding().Render(iconError), res.Spec, msg)
		}
	}
	if r.Passed() {
		fmt.Fprintf(&b, "%s all %d cases passed\n", stylePass.UnsetPadding().Render(iconSuccess), len(r.Results))
	} else {
		fmt.Fprintf(&b, "%s %d of %d cases failed\n", styleFail.UnsetPadding().Render(iconError), r.Failed(), len(r.Results))
	}
	return b.String()
}
