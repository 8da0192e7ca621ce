package tui

// TUI package provides terminal output for the CLI:
//   - Status lines with colored prefixes
//   - Section headers
//   - A fixed-width table of snapshot entries
//
// Colors are only written when the destination is a terminal.

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/toefel18/patan"
	"github.com/toefel18/patan/stats"
)

// =============================================================================
// COLORS
// =============================================================================

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorGreen  = "\033[0;32m"
	ColorBlue   = "\033[0;34m"
	ColorCyan   = "\033[0;36m"
	ColorYellow = "\033[1;33m"
	ColorRed    = "\033[0;31m"
)

// Printer writes styled lines to w.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer. Colors are enabled when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	f, ok := w.(*os.File)
	return &Printer{w: w, color: ok && term.IsTerminal(int(f.Fd()))}
}

func (p *Printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + ColorReset
}

// =============================================================================
// PRINT FUNCTIONS
// =============================================================================

// PrintHeader prints a styled section header.
func (p *Printer) PrintHeader(title string) {
	rule := strings.Repeat("=", 40)
	fmt.Fprintf(p.w, "\n%s\n", p.paint(ColorBold+ColorCyan, rule))
	fmt.Fprintf(p.w, "%s\n", p.paint(ColorBold+ColorCyan, "       "+title))
	fmt.Fprintf(p.w, "%s\n\n", p.paint(ColorBold+ColorCyan, rule))
}

// PrintSuccess prints a success message with green [OK] prefix.
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(ColorGreen, "[OK]"), msg)
}

// PrintInfo prints an info message with blue [INFO] prefix.
func (p *Printer) PrintInfo(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(ColorBlue, "[INFO]"), msg)
}

// PrintWarn prints a warning message with yellow [WARN] prefix.
func (p *Printer) PrintWarn(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(ColorYellow, "[WARN]"), msg)
}

// PrintError prints an error message with red [ERROR] prefix.
func (p *Printer) PrintError(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(ColorRed, "[ERROR]"), msg)
}

// =============================================================================
// SNAPSHOT TABLE
// =============================================================================

const tableRow = "%-10s %-32s %10s %12s %12s %12s %12s\n"

// PrintSnapshot prints samples and durations followed by occurrences, one
// row per name. Undefined statistics are shown as "-".
func (p *Printer) PrintSnapshot(snap *patan.Snapshot) {
	header := fmt.Sprintf(tableRow, "SECTION", "NAME", "COUNT", "MIN", "MAX", "MEAN", "STDDEV")
	fmt.Fprint(p.w, p.paint(ColorBold, header))

	p.printDistributions("sample", snap.Samples())
	p.printDistributions("duration", snap.Durations())

	occurrences := snap.Occurrences()
	for _, name := range occurrences.Names() {
		fmt.Fprintf(p.w, tableRow, "occurrence", name, fmt.Sprint(occurrences[name]), "-", "-", "-", "-")
	}
}

func (p *Printer) printDistributions(section string, ds stats.Distributions) {
	for _, name := range ds.Names() {
		d := ds[name]
		fmt.Fprintf(p.w, tableRow, section, name, fmt.Sprint(d.Count()),
			formatStat(d.Min()), formatStat(d.Max()), formatStat(d.Mean()), formatStat(d.StdDev()))
	}
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
