// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/thermodisp/controller"
	"github.com/warthog618/thermodisp/gpio"
	"github.com/warthog618/thermodisp/max7219"
	"github.com/warthog618/thermodisp/sensor/ds18b20"
)

var defaultConfig = map[string]interface{}{
	"gpio.backend":         "mem",
	"pins.cs":              gpio.GPIO8,
	"pins.clk":             gpio.GPIO11,
	"pins.data":            gpio.GPIO10,
	"link.tclk":            "1us",
	"display.intensity":    0,
	"adc.driver":           "mcp3008",
	"adc.clk":              gpio.GPIO21,
	"adc.csz":              gpio.GPIO6,
	"adc.di":               gpio.GPIO19,
	"adc.do":               gpio.GPIO26,
	"adc.tclk":             "500ns",
	"adc.channel":          0,
	"adc.iio.device":       "iio:device0",
	"adc.iio.bits":         10,
	"vcc.calibration":      0,
	"vcc.settle":           "1ms",
	"startup.policy":       "single",
	"startup.samples":      1000,
	"startup.dwell":        "3s",
	"startup.rounds":       30,
	"startup.roundsamples": 100,
	"startup.powerup":      "500ms",
	"startup.settle":       "200ms",
	"sensor.bus":           "netlink",
	"sensor.master":        1,
	"sensor.address":       "",
	"sensor.index":         0,
	"sensor.resolution":    11,
	"sensor.alarmlow":      0,
	"sensor.alarmhigh":     125,
	"sensor.wait":          "0s",
	"log.level":            "info",
	"metrics.bind":         "",
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"config-file":  "config.file",
	"log-level":    "log.level",
	"backend":      "gpio.backend",
	"policy":       "startup.policy",
	"metrics-bind": "metrics.bind",
}

// flagOverrides returns the configuration set explicitly on the command line.
func flagOverrides(cmd *cobra.Command) map[string]interface{} {
	m := map[string]interface{}{}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			m[key] = f.Value.String()
		}
	}
	return m
}

func newConfig(overrides map[string]interface{}) *config.Config {
	def := dict.New(dict.WithMap(defaultConfig))
	// highest priority sources first - flags override environment
	cfg := config.New(
		dict.New(dict.WithMap(overrides)),
		env.New(env.WithEnvPrefix("THERMODISP_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "thermodisp.json", json.NewDecoder()))
	return cfg.GetConfig("", config.WithMust)
}

type adcConfig struct {
	driver    string
	clk       int
	csz       int
	di        int
	do        int
	tclk      time.Duration
	channel   int
	iioDevice string
	iioBits   uint
}

type sensorConfig struct {
	bus    string
	master uint32
	opts   ds18b20.Opts
}

// appConfig is the validated configuration.
type appConfig struct {
	backend     string
	pins        [3]int
	tclk        time.Duration
	adc         adcConfig
	calibration uint32
	settle      time.Duration
	controller  controller.Config
	sensor      sensorConfig
	logLevel    string
	metricsBind string
}

func loadAppConfig(cfg *config.Config) (ac appConfig, err error) {
	// WithMust panics on values that cannot be converted.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("config: %v", r)
		}
	}()
	ac.backend = cfg.MustGet("gpio.backend").String()
	switch ac.backend {
	case "mem", "periph":
	default:
		return ac, fmt.Errorf("config: unknown gpio backend %q", ac.backend)
	}
	ac.pins = [3]int{
		int(cfg.MustGet("pins.cs").Int()),
		int(cfg.MustGet("pins.clk").Int()),
		int(cfg.MustGet("pins.data").Int()),
	}
	ac.tclk = cfg.MustGet("link.tclk").Duration()
	ac.adc = adcConfig{
		driver:    cfg.MustGet("adc.driver").String(),
		clk:       int(cfg.MustGet("adc.clk").Int()),
		csz:       int(cfg.MustGet("adc.csz").Int()),
		di:        int(cfg.MustGet("adc.di").Int()),
		do:        int(cfg.MustGet("adc.do").Int()),
		tclk:      cfg.MustGet("adc.tclk").Duration(),
		channel:   int(cfg.MustGet("adc.channel").Int()),
		iioDevice: cfg.MustGet("adc.iio.device").String(),
	}
	bits := cfg.MustGet("adc.iio.bits").Int()
	if bits < 1 || bits > 16 {
		return ac, fmt.Errorf("config: adc iio bits %d out of range", bits)
	}
	ac.adc.iioBits = uint(bits)
	// zero derives the constant from the ADC full scale
	cal := cfg.MustGet("vcc.calibration").Int()
	if cal < 0 || cal > math.MaxUint32 {
		return ac, fmt.Errorf("config: vcc calibration %d out of range", cal)
	}
	ac.calibration = uint32(cal)
	ac.settle = cfg.MustGet("vcc.settle").Duration()

	policy, err := controller.ParsePolicy(cfg.MustGet("startup.policy").String())
	if err != nil {
		return ac, err
	}
	intensity := cfg.MustGet("display.intensity").Int()
	if intensity < 0 || intensity > max7219.MaxIntensity {
		return ac, fmt.Errorf("config: display intensity %d out of range", intensity)
	}
	ac.controller = controller.Config{
		PowerUpDelay:   cfg.MustGet("startup.powerup").Duration(),
		SettleDelay:    cfg.MustGet("startup.settle").Duration(),
		Display:        max7219.Opts{Intensity: uint8(intensity)},
		Policy:         policy,
		Samples:        int(cfg.MustGet("startup.samples").Int()),
		Dwell:          cfg.MustGet("startup.dwell").Duration(),
		Rounds:         int(cfg.MustGet("startup.rounds").Int()),
		RoundSamples:   int(cfg.MustGet("startup.roundsamples").Int()),
		ConversionWait: cfg.MustGet("sensor.wait").Duration(),
	}
	if ac.controller.Samples < 1 || ac.controller.Rounds < 1 || ac.controller.RoundSamples < 1 {
		return ac, fmt.Errorf("config: startup samples %d, rounds %d and round samples %d must be positive",
			ac.controller.Samples, ac.controller.Rounds, ac.controller.RoundSamples)
	}

	alarmLow := cfg.MustGet("sensor.alarmlow").Int()
	alarmHigh := cfg.MustGet("sensor.alarmhigh").Int()
	if alarmLow < math.MinInt8 || alarmLow > math.MaxInt8 || alarmHigh < math.MinInt8 || alarmHigh > math.MaxInt8 {
		return ac, fmt.Errorf("config: sensor alarm %d..%d out of range", alarmLow, alarmHigh)
	}
	ac.sensor = sensorConfig{
		bus:    cfg.MustGet("sensor.bus").String(),
		master: uint32(cfg.MustGet("sensor.master").Int()),
		opts: ds18b20.Opts{
			Index:      int(cfg.MustGet("sensor.index").Int()),
			Resolution: int(cfg.MustGet("sensor.resolution").Int()),
			AlarmLow:   int8(alarmLow),
			AlarmHigh:  int8(alarmHigh),
		},
	}
	if a := cfg.MustGet("sensor.address").String(); a != "" {
		addr, err := ds18b20.ParseAddress(a)
		if err != nil {
			return ac, err
		}
		ac.sensor.opts.Address = addr
	}
	ac.logLevel = cfg.MustGet("log.level").String()
	ac.metricsBind = cfg.MustGet("metrics.bind").String()
	return ac, nil
}
