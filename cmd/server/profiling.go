package main

import (
	"fmt"
	"log/slog"

	"note-slides/internal/config"

	"github.com/grafana/pyroscope-go"
)

// slogPyroscope routes profiler messages through the application logger.
type slogPyroscope struct {
	log *slog.Logger
}

func (l slogPyroscope) Infof(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l slogPyroscope) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l slogPyroscope) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...))
}

// startProfiling starts continuous profiling when PYROSCOPE_SERVER_ADDRESS is
// set. It returns a nil profiler when profiling is disabled.
func startProfiling(cfg config.Config, log *slog.Logger) (*pyroscope.Profiler, error) {
	if cfg.PyroscopeServerAddress == "" {
		return nil, nil
	}

	p, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: "note-slides",
		ServerAddress:   cfg.PyroscopeServerAddress,
		Logger:          slogPyroscope{log: log.With("component", "pyroscope")},
		Tags:            map[string]string{"storage": cfg.StorageDriver},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, err
	}

	log.Info("pyroscope profiling enabled", "server", cfg.PyroscopeServerAddress)
	return p, nil
}
