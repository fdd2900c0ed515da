package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/wesleyorama2/tickcounter/internal/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TextRenderer writes a Report in the human-readable layout.
type TextRenderer struct {
	Colors  *ColorScheme
	Printer *message.Printer
}

// NewTextRenderer creates a renderer; numbers are grouped with English
// thousands separators.
func NewTextRenderer(useColor bool) *TextRenderer {
	scheme := NoColorScheme()
	if useColor {
		scheme = ForcedColorScheme()
	}
	return &TextRenderer{
		Colors:  scheme,
		Printer: message.NewPrinter(language.English),
	}
}

// Render writes every section present in report, separated by blank lines.
func (r *TextRenderer) Render(w io.Writer, report *Report) error {
	var sections []string
	if report.Basic != nil {
		sections = append(sections, r.elapsedSection("Basic usage:", report.Basic))
	}
	if report.Helper != nil {
		sections = append(sections, r.elapsedSection("Basic usage with helper:", report.Helper))
	}
	if report.Extended != nil {
		sections = append(sections, r.extendedSection(report))
	}
	if report.Compare != nil {
		sections = append(sections, r.compareSection(report.Compare))
	}
	if len(sections) == 0 && report.Frequency != nil {
		sections = append(sections, r.frequencySection(report))
	}

	_, err := io.WriteString(w, strings.Join(sections, "\n"))
	return err
}

func (r *TextRenderer) title(buf *strings.Builder, text string) {
	buf.WriteString(r.Colors.Title.Sprint(text))
	buf.WriteString("\n")
}

func (r *TextRenderer) line(buf *strings.Builder, label, value string) {
	fmt.Fprintf(buf, "%s %s\n", r.Colors.Label.Sprint(label), value)
}

func (r *TextRenderer) integer(v interface{}) string {
	return r.Colors.Number.Sprint(r.Printer.Sprintf("%d", v))
}

func (r *TextRenderer) decimal(v float64) string {
	return r.Colors.Number.Sprint(r.Printer.Sprintf("%.2f", v))
}

func (r *TextRenderer) elapsedSection(title string, m *Measurement) string {
	var buf strings.Builder
	r.title(&buf, title)
	r.line(&buf, fmt.Sprintf("Number of elapsed ticks in %s:", m.Sleep), r.integer(m.ElapsedTicks))
	return buf.String()
}

func (r *TextRenderer) environment(buf *strings.Builder, env Environment) {
	value := fmt.Sprintf("%s/%s (%s, %d CPUs", env.OS, env.Arch, env.GoVersion, env.CPUs)
	if env.PinnedCPU != nil {
		value += fmt.Sprintf(", pinned to CPU %d", *env.PinnedCPU)
	}
	r.line(buf, "Environment:", value+")")
}

func (r *TextRenderer) frequency(buf *strings.Builder, f *FrequencyInfo) {
	base := r.Colors.Measured
	if f.Base == "hardware" {
		base = r.Colors.Hardware
	}
	r.line(buf, "Tick frequency, MHz:", fmt.Sprintf("%s (%s)", r.decimal(f.MHz), base.Sprint(f.Description)))
	r.line(buf, "Tick precision, nanoseconds:", r.decimal(f.PrecisionNs))
}

func (r *TextRenderer) frequencySection(report *Report) string {
	var buf strings.Builder
	r.title(&buf, "Frequency:")
	r.environment(&buf, report.Environment)
	r.frequency(&buf, report.Frequency)
	return buf.String()
}

func (r *TextRenderer) extendedSection(report *Report) string {
	var buf strings.Builder
	m := report.Extended

	r.title(&buf, "Extended usage:")
	r.environment(&buf, report.Environment)
	if report.Frequency != nil {
		r.frequency(&buf, report.Frequency)
	}
	r.line(&buf, "Tick counter start:", r.integer(m.StartTicks))
	r.line(&buf, "Tick counter stop:", r.integer(m.StopTicks))
	r.line(&buf, fmt.Sprintf("Elapsed ticks count in %s:", m.Sleep), r.integer(m.ElapsedTicks))
	r.line(&buf, "Elapsed nanoseconds according to elapsed ticks:", r.decimal(m.ElapsedNs))
	return buf.String()
}

func (r *TextRenderer) compareSection(c *Comparison) string {
	var buf strings.Builder

	r.title(&buf, r.Printer.Sprintf("Comparing the measurement methods using %d samples:", c.Samples))

	buf.WriteString(r.Colors.Highlight.Sprint("Elapsed time in nanoseconds, using time.Now"))
	buf.WriteString("\n")
	r.summary(&buf, c.WallClock)

	buf.WriteString(r.Colors.Highlight.Sprint("Elapsed time in nanoseconds, using the tick counter"))
	buf.WriteString("\n")
	r.summary(&buf, c.TickCounter)

	return buf.String()
}

func (r *TextRenderer) summary(buf *strings.Builder, s stats.Summary) {
	r.line(buf, "  Mean =", r.decimal(s.Mean))
	r.line(buf, "  Min  =", r.integer(s.Min))
	r.line(buf, "  Max  =", r.integer(s.Max))
	r.line(buf, "  Standard deviation =", fmt.Sprintf("%s (%s %%)", r.decimal(s.StdDev), r.decimal(s.StdDevPercent)))
	r.line(buf, "  Percentiles p50/p90/p99 =", fmt.Sprintf("%s / %s / %s", r.integer(s.P50), r.integer(s.P90), r.integer(s.P99)))
}
