// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package controller sequences the thermometer: display and sensor bring
// up, a supply voltage readout, then a continuous temperature readout.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/thermodisp/max7219"
	"github.com/warthog618/thermodisp/readout"
	"go.uber.org/zap"
)

// Display shows readouts. It is satisfied by *max7219.Dev.
type Display interface {
	Init(opts *max7219.Opts) error
	Show(d readout.Digits) error
	Blank()
}

// Voltmeter measures the supply voltage, in millivolts, averaged over n
// samples. It is satisfied by *adc.Vcc.
type Voltmeter interface {
	Sample(n int) (uint32, error)
}

// Sensor performs temperature conversions.
type Sensor interface {
	// Configure selects and configures the sensor.
	Configure() error
	// StartConversion starts a conversion.
	StartConversion() error
	// ReadResult returns the last conversion, in sixteenths of a degree.
	ReadResult() (int16, error)
	// ConversionTime is the time a conversion takes to complete.
	ConversionTime() time.Duration
}

// Config contains the timing and policy of the controller.
type Config struct {
	// PowerUpDelay is the wait before the display driver is initialised.
	PowerUpDelay time.Duration
	// SettleDelay is the wait after the display driver is initialised.
	SettleDelay time.Duration
	// Display settings applied at Init.
	Display max7219.Opts
	// Policy selects the voltage readout at startup.
	Policy Policy
	// Samples averaged, and the time the readout is held, for the Single policy.
	Samples int
	Dwell   time.Duration
	// Rounds of RoundSamples samples displayed for the Monitor policy.
	Rounds       int
	RoundSamples int
	// ConversionWait overrides the sensor's conversion time, if non-zero.
	ConversionWait time.Duration
}

// DefaultConfig is the configuration used when none is provided.
var DefaultConfig = Config{
	PowerUpDelay: 500 * time.Millisecond,
	SettleDelay:  200 * time.Millisecond,
	Display:      max7219.DefaultOpts,
	Policy:       Single,
	Samples:      1000,
	Dwell:        3 * time.Second,
	Rounds:       30,
	RoundSamples: 100,
}

// Controller runs the display.
type Controller struct {
	cfg     Config
	display Display
	vcc     Voltmeter
	sensor  Sensor
	log     *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error

	mu    sync.Mutex
	state State
}

// Option modifies a Controller created by New.
type Option func(*Controller)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithSleep replaces the wait between steps.
// The function must return early, with the context error, if the context is done.
func WithSleep(f func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Controller) {
		c.sleep = f
	}
}

// New creates a Controller.
func New(d Display, v Voltmeter, s Sensor, cfg *Config, options ...Option) *Controller {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c := &Controller{
		cfg:     *cfg,
		display: d,
		vcc:     v,
		sensor:  s,
		log:     zap.NewNop(),
		sleep:   wait,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	stateGauge.Set(float64(s))
	c.log.Info("state", zap.Stringer("state", s))
}

// Run initialises the hardware, displays the supply voltage and then
// displays the temperature until the context is done.
//
// Errors reading the sensor are logged and leave the display unchanged.
// Run only returns early if the hardware cannot be initialised.
// Once the display is initialised it is blanked when Run returns.
func (c *Controller) Run(ctx context.Context) error {
	if _, err := ParsePolicy(string(c.cfg.Policy)); err != nil {
		return err
	}
	c.setState(Init)
	if err := c.sleep(ctx, c.cfg.PowerUpDelay); err != nil {
		return err
	}
	if err := c.display.Init(&c.cfg.Display); err != nil {
		return fmt.Errorf("controller: display init: %w", err)
	}
	defer c.display.Blank()
	if err := c.sleep(ctx, c.cfg.SettleDelay); err != nil {
		return err
	}
	if err := c.sensor.Configure(); err != nil {
		return fmt.Errorf("controller: sensor configure: %w", err)
	}

	c.setState(CalibratingVoltage)
	if err := c.calibrate(ctx); err != nil {
		return err
	}

	c.setState(DisplayingTemperature)
	for {
		if _, err := c.RefreshTemperature(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			sensorErrorCounter.Inc()
			c.log.Warn("temperature refresh failed", zap.Error(err))
			// hold off before retrying a sensor that fails fast
			if err := c.sleep(ctx, c.conversionWait()); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) conversionWait() time.Duration {
	if c.cfg.ConversionWait != 0 {
		return c.cfg.ConversionWait
	}
	return c.sensor.ConversionTime()
}

func (c *Controller) calibrate(ctx context.Context) error {
	if c.cfg.Policy == Monitor {
		for i := 0; i < c.cfg.Rounds; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.voltage(c.cfg.RoundSamples)
		}
		return ctx.Err()
	}
	c.voltage(c.cfg.Samples)
	return c.sleep(ctx, c.cfg.Dwell)
}

func (c *Controller) voltage(n int) {
	if _, err := c.ShowVoltage(n); err != nil {
		voltageErrorCounter.Inc()
		c.log.Warn("voltage readout failed", zap.Int("samples", n), zap.Error(err))
	}
}

// ShowVoltage samples the supply voltage n times and displays the average.
func (c *Controller) ShowVoltage(n int) (uint32, error) {
	mv, err := c.vcc.Sample(n)
	if err != nil {
		return 0, err
	}
	if err := c.display.Show(readout.Voltage(mv)); err != nil {
		return 0, err
	}
	refreshCounter.Inc()
	supplyGauge.Set(float64(mv))
	c.log.Debug("supply", zap.Uint32("mV", mv), zap.Int("samples", n))
	return mv, nil
}

// RefreshTemperature performs a conversion and displays the result.
//
// On error the display is left unchanged.
func (c *Controller) RefreshTemperature(ctx context.Context) (readout.Digits, error) {
	if err := c.sensor.StartConversion(); err != nil {
		return readout.Digits{}, err
	}
	if err := c.sleep(ctx, c.conversionWait()); err != nil {
		return readout.Digits{}, err
	}
	raw, err := c.sensor.ReadResult()
	if err != nil {
		return readout.Digits{}, err
	}
	digits, err := readout.Temperature(raw)
	if err != nil {
		return readout.Digits{}, err
	}
	if err := c.display.Show(digits); err != nil {
		return readout.Digits{}, err
	}
	refreshCounter.Inc()
	temperatureGauge.Set(float64(raw) / 16)
	c.log.Debug("temperature", zap.Int16("raw", raw), zap.Stringer("readout", digits))
	return digits, nil
}

// wait blocks for d or until the context is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsCanceled reports whether err results from the context being done.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
