package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/tickcounter/internal/output"
	"github.com/wesleyorama2/tickcounter/internal/stats"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose counter calibration and read overhead as Prometheus metrics",
		Long: `serve resolves the counter frequency once, then samples the cost of
back-to-back counter reads every --interval and publishes both on
/metrics until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.config.Serve.Addr)
			if err != nil {
				return errors.Wrapf(err, "failed to listen on %s", a.config.Serve.Addr)
			}
			return a.serve(ctx, ln)
		},
	}

	cmd.Flags().String("addr", ":9464", "listen address of the metrics endpoint")
	cmd.Flags().Duration("interval", 5*time.Second, "time between overhead sampling rounds")
	return cmd
}

// newRegistry returns a registry holding the Go runtime, process and
// tick counter collectors.
func newRegistry() (*prometheus.Registry, *stats.Collector, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector, err := stats.NewCollector(reg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to register metrics")
	}
	return reg, collector, nil
}

// serve publishes metrics on ln until ctx is done.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	reg, collector, err := newRegistry()
	if err != nil {
		ln.Close()
		return err
	}

	info := a.runner.FrequencyInfo()
	collector.SetCalibration(info.Hz, info.Base, info.PrecisionNs, info.WindowSeconds)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	a.log.WithFields(logrus.Fields{
		"address": ln.Addr().String(),
		"hz":      info.Hz,
		"base":    info.Base,
	}).Infof("%s Serving metrics", output.SuccessIcon(true))

	cfg := a.config.Serve
	a.runner.SampleOverhead(cfg.Samples, collector)

	ticker := time.NewTicker(cfg.Interval.Std())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.runner.SampleOverhead(cfg.Samples, collector)
		case err := <-serveErr:
			return errors.Wrap(err, "metrics server failed")
		case <-ctx.Done():
			a.log.Info("Shutting down metrics server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "failed to shut down metrics server")
			}
			return nil
		}
	}
}
