package output

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// XlsxSheetName is the worksheet holding the report.
const XlsxSheetName = "Report"

func cellName(col int, row int) (name string) {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return
	}
	name, err = excelize.JoinCellName(columnName, row)
	if err != nil {
		return
	}
	return
}

type xlsxSheet struct {
	f     *excelize.File
	name  string
	row   int
	bold  int
	title int
}

func (s *xlsxSheet) values(style int, values ...interface{}) {
	for i, v := range values {
		cell := cellName(i+1, s.row)
		_ = s.f.SetCellValue(s.name, cell, v)
		if style != 0 {
			_ = s.f.SetCellStyle(s.name, cell, cell, style)
		}
	}
	s.row++
}

func (s *xlsxSheet) table(name string) {
	s.values(s.title, name)
}

func (s *xlsxSheet) end() {
	s.row++
}

// RenderXLSX returns report as an Excel workbook with one sheet.
func RenderXLSX(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetSheetName("Sheet1", XlsxSheetName)
	_ = f.SetColWidth(XlsxSheetName, "A", "A", 25)
	_ = f.SetColWidth(XlsxSheetName, "B", "G", 20)

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	s := &xlsxSheet{f: f, name: XlsxSheetName, row: 1, bold: boldStyle, title: titleStyle}

	env := report.Environment
	s.table("Environment")
	s.values(0, "OS", env.OS)
	s.values(0, "Arch", env.Arch)
	s.values(0, "Go version", env.GoVersion)
	s.values(0, "CPUs", env.CPUs)
	if env.PinnedCPU != nil {
		s.values(0, "Pinned CPU", *env.PinnedCPU)
	}
	s.end()

	if fr := report.Frequency; fr != nil {
		s.table("Frequency")
		s.values(0, "Hz", fr.Hz)
		s.values(0, "MHz", fr.MHz)
		s.values(0, "Base", fr.Base)
		s.values(0, "Description", fr.Description)
		if fr.WindowSeconds > 0 {
			s.values(0, "Window (s)", fr.WindowSeconds)
		}
		s.values(0, "Precision (ns)", fr.PrecisionNs)
		s.end()
	}

	measurements := []struct {
		name string
		m    *Measurement
	}{
		{"basic", report.Basic},
		{"helper", report.Helper},
		{"extended", report.Extended},
	}
	header := false
	for _, entry := range measurements {
		if entry.m == nil {
			continue
		}
		if !header {
			s.table("Measurements")
			s.values(boldStyle, "Run", "Sleep", "Start ticks", "Stop ticks", "Elapsed ticks", "Elapsed ns")
			header = true
		}
		m := entry.m
		s.values(0, entry.name, m.Sleep, m.StartTicks, m.StopTicks, m.ElapsedTicks, m.ElapsedNs)
	}
	if header {
		s.end()
	}

	if c := report.Compare; c != nil {
		s.table("Comparison")
		s.values(0, "Samples", c.Samples)
		s.values(boldStyle, "Statistic (ns)", "time.Now", "tick counter")
		w, t := c.WallClock, c.TickCounter
		s.values(0, "Mean", w.Mean, t.Mean)
		s.values(0, "Min", w.Min, t.Min)
		s.values(0, "Max", w.Max, t.Max)
		s.values(0, "Standard deviation", w.StdDev, t.StdDev)
		s.values(0, "Standard deviation %", w.StdDevPercent, t.StdDevPercent)
		s.values(0, "P50", w.P50, t.P50)
		s.values(0, "P90", w.P90, t.P90)
		s.values(0, "P99", w.P99, t.P99)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx report to buffer")
	}
	return buf.Bytes(), nil
}
