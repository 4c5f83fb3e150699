package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	rackio "github.com/racklabs/rackplan/pkg/io"
	"github.com/racklabs/rackplan/pkg/rack"
)

// emitPlan writes an arranged plan per the output flags: to a file when
// output is set, as JSON on stdout with asJSON, and as a styled
// elevation otherwise. JSON mode prints nothing else so the output
// stays pipeable.
func emitPlan(plan *rack.Plan, output string, asJSON bool) error {
	if output != "" {
		if err := rackio.ExportPlanFile(plan, output); err != nil {
			return err
		}
	}
	if asJSON {
		return rackio.WritePlan(plan, os.Stdout)
	}
	fmt.Print(renderPlan(plan))
	return nil
}

// renderPlan renders every layout in the plan as a text elevation,
// separated by blank lines.
func renderPlan(p *rack.Plan) string {
	var b strings.Builder
	for i, l := range p.Layouts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderLayout(l))
	}
	return b.String()
}

// renderLayout renders one rack the way an installer reads an elevation
// drawing: highest unit first, with a totals header above the table and
// an overflow warning below it when the equipment does not fit.
func renderLayout(l *rack.Layout) string {
	var b strings.Builder

	title := l.Name
	if title == "" {
		title = fmt.Sprintf("%dU Rack", l.Capacity)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("Capacity: %dU | Equipment: %dU | Vents/Blanks: %dU | Free: %dU",
		l.Capacity, l.EquipmentUnits(), l.FillerUnits(), l.FreeUnits())))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("Total Weight: %.1f lbs | Total BTU: %.0f",
		l.TotalWeight(), l.TotalBTU())))
	b.WriteString("\n")

	items := l.ItemsTopDown()
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{unitRange(it), it.DisplayName(), weightCell(it), btuCell(it)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Units", "Item", "Weight", "BTU").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(items) {
				return lipgloss.NewStyle()
			}
			switch {
			case !items[row].IsEquipment():
				return lipgloss.NewStyle().Foreground(colorDim)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if l.Overflows() {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " +
			StyleWarning.Render(fmt.Sprintf("items exceed capacity by %dU", -l.FreeUnits())))
		b.WriteString("\n")
	}

	return b.String()
}

// unitRange formats the rack units an item spans in the style elevation
// drawings use: "U07" for a single unit, "U07-08" for a span.
func unitRange(it rack.Item) string {
	if it.Units <= 1 {
		return fmt.Sprintf("U%02d", it.Position)
	}
	return fmt.Sprintf("U%02d-%02d", it.Position, it.Top())
}

func weightCell(it rack.Item) string {
	if it.Weight == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f lb", it.Weight)
}

func btuCell(it rack.Item) string {
	if it.BTU == 0 {
		return ""
	}
	return fmt.Sprintf("%.0f", it.BTU)
}
