// Package observability starts the optional tracing and profiling
// sidecars of the API process.
package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/championship-organizer/internal/config"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

type stopFunc func(context.Context) error

type component struct {
	name    string
	enabled func(config.Config) bool
	start   func(config.Config, *logging.Logger) (stopFunc, error)
}

var components = []component{
	{
		name:    "uptrace",
		enabled: func(cfg config.Config) bool { return cfg.UptraceEnabled && strings.TrimSpace(cfg.UptraceDSN) != "" },
		start:   startUptrace,
	},
	{
		name:    "pyroscope",
		enabled: func(cfg config.Config) bool { return cfg.PyroscopeEnabled },
		start:   startPyroscope,
	},
	{
		name:    "pprof",
		enabled: func(cfg config.Config) bool { return cfg.PprofEnabled },
		start:   startPprof,
	},
}

// Start brings up every enabled component. If one fails, those already
// running are stopped again. The returned shutdown stops them in reverse
// order.
func Start(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	var stops []stopFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(stops) - 1; i >= 0; i-- {
			errs = append(errs, stops[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, c := range components {
		if !c.enabled(cfg) {
			logger.Debug("component disabled", "component", c.name)
			continue
		}
		stop, err := c.start(cfg, logger)
		if err != nil {
			_ = shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", c.name, err)
		}
		logger.Info("component started", "component", c.name)
		stops = append(stops, stop)
	}
	return shutdown, nil
}

// startUptrace installs the global OpenTelemetry providers. Without it
// the otel no-op providers stay in place and spans cost nothing.
func startUptrace(cfg config.Config, _ *logging.Logger) (stopFunc, error) {
	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	return uptrace.Shutdown, nil
}

func startPyroscope(cfg config.Config, _ *logging.Logger) (stopFunc, error) {
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
		},
		// the match clock runs one goroutine per live match
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return nil, err
	}
	return func(context.Context) error { return profiler.Stop() }, nil
}

// startPprof binds before returning so a taken port fails startup.
func startPprof(cfg config.Config, logger *logging.Logger) (stopFunc, error) {
	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	logger.Info("pprof listening", "addr", ln.Addr().String())
	return srv.Shutdown, nil
}
