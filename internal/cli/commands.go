package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/tickcounter/internal/output"
)

// section selects the parts of the report a command produces.
type section int

const (
	sectionBasic section = 1 << iota
	sectionHelper
	sectionExtended
	sectionCompare
	sectionFrequency

	sectionAll = sectionBasic | sectionHelper | sectionExtended | sectionCompare
)

func newSectionCmd(opts *options, s section, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(cmd, opts, s)
		},
	}
}

func runSections(cmd *cobra.Command, opts *options, s section) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.close()

	return a.write(a.measure(s))
}

// measure runs the requested sections in their display order.
func (a *app) measure(s section) *output.Report {
	cfg := a.config
	r := a.runner
	sleep := cfg.Sleep.Std()

	report := &output.Report{Environment: a.environment()}

	if s&(sectionExtended|sectionFrequency) != 0 {
		// Resolve before any timed region so a calibration does not
		// overlap with it.
		report.Frequency = r.FrequencyInfo()
	}

	if s&sectionBasic != 0 {
		a.log.Debugf("Running basic measurement over %v", sleep)
		report.Basic = r.Basic(sleep)
	}
	if s&sectionHelper != 0 {
		a.log.Debugf("Running helper measurement over %v", sleep)
		report.Helper = r.Helper(sleep)
	}
	if s&sectionExtended != 0 {
		a.log.Debugf("Running extended measurement over %v", sleep)
		report.Extended = r.Extended(sleep)
	}
	if s&sectionCompare != 0 {
		a.log.Debugf("Comparing measurement methods with %d samples", cfg.Samples)
		report.Compare = r.Compare(cfg.Samples)
	}

	return report
}
