package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/evaluate"
	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/routing"
	"github.com/matzehuels/netplan/pkg/store"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorOrange = lipgloss.Color("214") // Orange - high load
	colorRed    = lipgloss.Color("167") // Soft red - errors, overload
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleBorder  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess   = "✓"
	iconError     = "✗"
	iconWarning   = "!"
	iconInfo      = "›"
	iconArrow     = "→"
	iconCached    = "cached"
	iconFresh     = "fresh"
	iconSaturated = "∞"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// printStats prints network statistics on a single line.
func printStats(nodes, links int, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	sep := StyleDim.Render(" · ")
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf("%d sites", nodes)) + sep +
		StyleDim.Render(fmt.Sprintf("%d links", links)) + sep + statusStyle.Render(status))
}

func printWarnings(warnings []errors.Warning) {
	for _, w := range warnings {
		printWarning("%s", w.Message)
	}
}

// =============================================================================
// Formatting
// =============================================================================

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatDelay renders a link delay in milliseconds, "∞" when saturated.
func formatDelay(d float64) string {
	if network.IsSaturated(d) {
		return iconSaturated
	}
	return strconv.FormatFloat(d, 'f', 3, 64)
}

// formatAvgDelay renders an average delay, "N/A" when no link contributed.
func formatAvgDelay(d float64) string {
	if d == 0 {
		return "N/A"
	}
	return formatDelay(d)
}

func formatPercent(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}

// levelStyle colours a load level the way the renderer does.
func levelStyle(level capacity.LoadLevel) lipgloss.Style {
	switch level {
	case capacity.LoadOverload:
		return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	case capacity.LoadHigh:
		return lipgloss.NewStyle().Foreground(colorOrange)
	default:
		return lipgloss.NewStyle().Foreground(colorWhite)
	}
}

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...)
}

// =============================================================================
// Reports
// =============================================================================

// reportTable renders the per-link breakdown of a report, one row per link
// in (from, to) order.
func reportTable(r evaluate.Report) string {
	rows := make([][]string, len(r.Links))
	for i, l := range r.Links {
		rows[i] = []string{
			fmt.Sprintf("%s %s %s", l.FromName, iconArrow, l.ToName),
			strconv.FormatFloat(l.Length, 'f', 1, 64),
			formatNumber(l.Flow),
			formatNumber(l.Capacity),
			formatPercent(l.Utilization),
			formatDelay(l.Delay),
			formatMoney(l.Cost),
			string(l.Level),
		}
	}
	t := newTable("Link", "Length", "Flow", "Capacity", "Load", "Delay (ms)", "Cost", "Level").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if row < 0 || row >= len(r.Links) {
				return styleCell
			}
			return levelStyle(r.Links[row].Level).Padding(0, 1)
		})
	return t.Render()
}

// printReport prints the summary figures followed by the link table.
func printReport(r evaluate.Report, th capacity.Thresholds) {
	fmt.Println(StyleTitle.Render("Evaluation"))
	printKeyValue("Total cost", formatMoney(r.TotalCost))
	printKeyValue("  sites", formatMoney(r.NodeCost))
	printKeyValue("  length", formatMoney(r.LengthCost))
	printKeyValue("  capacity", formatMoney(r.CapacityCost))
	printKeyValue("Max delay", formatDelay(r.MaxDelay)+" ms")
	printKeyValue("Avg delay", formatAvgDelay(r.AvgDelay))
	printKeyValue("Active links", strconv.Itoa(r.ActiveLinks))
	printKeyValue("Saturated", strconv.Itoa(r.SaturatedLinks))
	printKeyValue("Avg load", formatPercent(r.AvgUtilization))
	printNewline()
	fmt.Println(reportTable(r))
	fmt.Println(legend(th))
}

// legend explains the level colours for the given thresholds.
func legend(th capacity.Thresholds) string {
	parts := []string{
		levelStyle(capacity.LoadNormal).Render(fmt.Sprintf("normal < %s", formatPercent(th.High))),
		levelStyle(capacity.LoadHigh).Render(fmt.Sprintf("high < %s", formatPercent(th.Overload))),
		levelStyle(capacity.LoadOverload).Render("overload"),
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// routesTable renders routes with their hop count and named path.
func routesTable(names map[int]string, entries []routing.Entry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{names[e.From], names[e.To], strconv.Itoa(e.Path.Hops()), routing.Format(names, e.Path)}
	}
	t := newTable("From", "To", "Hops", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			return styleCell
		})
	return t.Render()
}

// plansTable renders stored plan summaries.
func plansTable(plans []store.Summary) string {
	rows := make([][]string, len(plans))
	for i, p := range plans {
		rows[i] = []string{
			p.ID,
			p.Name,
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(p.Nodes),
			strconv.Itoa(p.Links),
			formatMoney(p.TotalCost),
			formatDelay(p.MaxDelay),
		}
	}
	t := newTable("ID", "Name", "Created", "Sites", "Links", "Cost", "Max delay").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if col == 0 {
				return StyleDim.Padding(0, 1)
			}
			return styleCell
		})
	return t.Render()
}
