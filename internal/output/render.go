package output

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/wesleyorama2/tickcounter/internal/config"
)

// Options selects how a report is written.
type Options struct {
	// Format is one of the config.Format values.
	Format string
	// Field, when set, prints only this value of the JSON report.
	Field string
	Color bool
}

// Write renders report to w in the format given by opts.
func Write(w io.Writer, report *Report, opts Options) error {
	if opts.Field != "" {
		doc, err := MarshalJSON(report)
		if err != nil {
			return err
		}
		value, err := Query(doc, opts.Field)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, value)
		return err
	}

	switch opts.Format {
	case config.FormatText, "":
		return NewTextRenderer(opts.Color).Render(w, report)
	case config.FormatJSON:
		return RenderJSON(w, report)
	case config.FormatXLSX:
		data, err := RenderXLSX(report)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.Errorf("unsupported output format: %s", opts.Format)
	}
}
