package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/tickcounter/internal/config"
	"github.com/wesleyorama2/tickcounter/internal/output"
)

var version = "0.1.0"

// options holds the values of the global flags.
type options struct {
	configFile  string
	format      string
	outputFile  string
	field       string
	noColor     bool
	verbose     bool
	pinCPU      int
	calibration time.Duration
	spin        bool
	sleep       time.Duration
	samples     int
}

// NewRootCmd builds the tickcounter command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "tickcounter",
		Short:   "Measure time with the CPU tick counter",
		Version: version,
		Long: `tickcounter reads the processor's hardware tick counter (TSC on x86-64,
CNTVCT_EL0 on AArch64), resolves its frequency and compares tick based
timing with the wall clock.

Without a subcommand it runs basic, helper, extended and compare in turn.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(cmd, opts, sectionAll)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opts.format, "format", "f", config.FormatText, "output format: text, json or xlsx")
	flags.StringVarP(&opts.outputFile, "output", "o", "", "write the report to this file instead of stdout")
	flags.StringVar(&opts.field, "field", "", "print a single value of the JSON report, e.g. frequency.hz")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVar(&opts.pinCPU, "pin-cpu", -1, "pin the measuring thread to this CPU (Linux only)")
	flags.DurationVar(&opts.calibration, "calibration", 0, "measure the frequency over this window instead of the default")
	flags.BoolVar(&opts.spin, "spin", false, "busy-wait instead of sleeping while calibrating")
	flags.DurationVarP(&opts.sleep, "sleep", "s", time.Second, "time to wait between start and stop reads")
	flags.IntVarP(&opts.samples, "samples", "n", 100, "number of samples taken by compare")

	root.AddCommand(
		newSectionCmd(opts, sectionBasic, "basic", "Time a sleep with raw start and stop reads"),
		newSectionCmd(opts, sectionHelper, "helper", "Time a sleep with the TickCounter wrapper"),
		newSectionCmd(opts, sectionExtended, "extended", "Show frequency, precision and an elapsed time conversion"),
		newSectionCmd(opts, sectionCompare, "compare", "Compare tick counter and wall clock measurements"),
		newSectionCmd(opts, sectionFrequency, "frequency", "Resolve and print the counter frequency"),
		newSectionCmd(opts, sectionAll, "all", "Run basic, helper, extended and compare"),
		newServeCmd(opts),
	)

	return root
}

// Execute runs the command line and reports a failure on stderr.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s Error: %v\n", output.ErrorIcon(!output.UseColor(os.Stderr, false)), err)
		return err
	}
	return nil
}
