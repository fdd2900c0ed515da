package cli

import (
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/tickcounter"
	"github.com/wesleyorama2/tickcounter/internal/affinity"
	"github.com/wesleyorama2/tickcounter/internal/config"
	"github.com/wesleyorama2/tickcounter/internal/output"
)

// Replaced in tests.
var (
	pinCPU     = affinity.Pin
	createFile = func(name string) (io.WriteCloser, error) { return os.Create(name) }
)

// app is the state shared by every command of one invocation.
type app struct {
	cmd     *cobra.Command
	config  *config.Config
	log     *logrus.Logger
	runner  *Runner
	pinning affinity.Pinning
}

// newApp loads the configuration, applies flag overrides and pins the
// thread when asked to. Callers must call close.
func newApp(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	log := newLogger(cmd.ErrOrStderr(), opts.verbose)
	a := &app{
		cmd:    cmd,
		config: cfg,
		log:    log,
	}
	a.runner = NewRunner(log, a.resolveFrequency)

	if cfg.PinCPU >= 0 {
		pinning, err := pinCPU(cfg.PinCPU)
		switch {
		case errors.Is(err, affinity.ErrUnsupported):
			log.Warnf("%s CPU pinning is not supported on %s, continuing unpinned", output.WarningIcon(true), runtime.GOOS)
		case err != nil:
			return nil, errors.Wrapf(err, "failed to pin to CPU %d", cfg.PinCPU)
		default:
			log.Debugf("Pinned measuring thread to CPU %d", pinning.CPU())
			a.pinning = pinning
		}
	}

	return a, nil
}

func (a *app) close() {
	if a.pinning == nil {
		return
	}
	if err := a.pinning.Release(); err != nil {
		a.log.WithError(err).Warn("Failed to release CPU pinning")
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadConfig reads the configuration file, if any, and lets explicitly set
// flags override it.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configFile != "" {
		var err error
		cfg, err = config.LoadConfig(opts.configFile)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("sleep") {
		cfg.Sleep = config.Duration(opts.sleep)
	}
	if flags.Changed("samples") {
		cfg.Samples = opts.samples
	}
	if flags.Changed("pin-cpu") {
		cfg.PinCPU = opts.pinCPU
	}
	if flags.Changed("calibration") {
		cfg.Calibration.Duration = config.Duration(opts.calibration)
	}
	if flags.Changed("spin") {
		cfg.Calibration.Spin = opts.spin
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("output") {
		cfg.Output.File = opts.outputFile
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = opts.noColor
	}
	if flags.Changed("field") {
		cfg.Output.Field = opts.field
		if !flags.Changed("format") {
			cfg.Output.Format = config.FormatJSON
		}
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Serve.Addr, _ = flags.GetString("addr")
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		interval, _ := flags.GetDuration("interval")
		cfg.Serve.Interval = config.Duration(interval)
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs, "invalid options")
	}
	return cfg, nil
}

// resolveFrequency uses the process-wide cached frequency unless a
// calibration was requested.
func (a *app) resolveFrequency() (uint64, tickcounter.FrequencyBase) {
	c := a.config.Calibration
	if c.Duration == 0 && !c.Spin {
		return tickcounter.CachedFrequency()
	}
	a.log.Debugf("Calibrating over %v (spin: %t)", c.Duration.Std(), c.Spin)
	return tickcounter.CalibrateWith(tickcounter.CalibrationOptions{
		Duration: c.Duration.Std(),
		Spin:     c.Spin,
	})
}

func (a *app) environment() output.Environment {
	env := output.Environment{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		CPUs:      runtime.NumCPU(),
	}
	if a.pinning != nil {
		cpu := a.pinning.CPU()
		env.PinnedCPU = &cpu
	}
	return env
}

// write renders report to the configured destination.
func (a *app) write(report *output.Report) error {
	out := a.config.Output
	if out.File == "" {
		return a.render(a.cmd.OutOrStdout(), report)
	}

	f, err := createFile(out.File)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if err := a.render(f, report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to close output file")
	}
	a.log.Infof("Report written to %s", out.File)
	return nil
}

func (a *app) render(w io.Writer, report *output.Report) error {
	out := a.config.Output
	err := output.Write(w, report, output.Options{
		Format: out.Format,
		Field:  out.Field,
		Color:  output.UseColor(w, out.NoColor),
	})
	return errors.Wrap(err, "failed to write report")
}
