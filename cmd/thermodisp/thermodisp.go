// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

//go:build linux
// +build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/warthog618/thermodisp/controller"
	"go.uber.org/zap"
)

var version = "undefined"

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config-file", "c", "", "configuration file")
	rootCmd.PersistentFlags().StringVar(&rootOpts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVarP(&rootOpts.Backend, "backend", "b", "", "GPIO backend (mem|periph)")
	rootCmd.Flags().StringVarP(&rootOpts.Policy, "policy", "p", "", "startup voltage readout (single|monitor)")
	rootCmd.Flags().StringVar(&rootOpts.MetricsBind, "metrics-bind", "", "address to serve prometheus metrics on")
	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + extendedRootHelp)
}

var (
	rootCmd = &cobra.Command{
		Use:          "thermodisp",
		Short:        "thermodisp displays the temperature from a DS18B20 on a MAX7219 driven LED display",
		Args:         cobra.NoArgs,
		RunE:         run,
		SilenceUsage: true,
		Version:      version,
	}
	rootOpts = struct {
		ConfigFile  string
		LogLevel    string
		Backend     string
		Policy      string
		MetricsBind string
	}{}
)

var extendedRootHelp = `
Configuration:
  Settings are read from, in decreasing priority, flags, the environment
  (THERMODISP_ prefix, e.g. THERMODISP_PINS_CS=8), the JSON config file
  and built in defaults.

On startup the supply voltage is displayed, then the temperature is
displayed until the process is interrupted, at which point the display
is blanked.
`

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "thermodisp %s: %s\n", cmd.Name(), err)
}

// setup loads the configuration and creates the logger shared by all commands.
func setup(cmd *cobra.Command) (appConfig, *zap.Logger, error) {
	ac, err := loadAppConfig(newConfig(flagOverrides(cmd)))
	if err != nil {
		return ac, nil, err
	}
	log, err := newLogger(ac.logLevel)
	if err != nil {
		return ac, nil, err
	}
	return ac, log, nil
}

func run(cmd *cobra.Command, args []string) error {
	ac, log, err := setup(cmd)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer log.Sync()

	hw, err := openHardware(ac, needDisplay|needADC|needSensor)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer hw.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if ac.metricsBind != "" {
		srv := serveMetrics(ac.metricsBind, log)
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), time.Second)
			defer scancel()
			srv.Shutdown(sctx)
		}()
	}

	c := controller.New(hw.display(ac), hw.vcc(ac), hw.sensor, &ac.controller, controller.WithLogger(log))
	log.Info("starting",
		zap.String("version", version),
		zap.String("backend", ac.backend),
		zap.String("policy", string(ac.controller.Policy)))
	err = c.Run(ctx)
	if controller.IsCanceled(err) {
		log.Info("stopped")
		return nil
	}
	logErr(cmd, err)
	return err
}

func serveMetrics(bind string, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: bind, Handler: mux}
	go func() {
		log.Info("metrics server listening", zap.String("bind", bind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server died", zap.Error(err))
		}
	}()
	return srv
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}
