// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thermodisp_display_refreshes_total",
		Help: "count of readouts written to the display",
	})

	sensorErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thermodisp_sensor_errors_total",
		Help: "count of temperature cycles that failed to produce a readout",
	})

	voltageErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thermodisp_voltage_errors_total",
		Help: "count of supply voltage samples that failed to produce a readout",
	})

	supplyGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thermodisp_supply_millivolts",
		Help: "last measured supply voltage, in millivolts",
	})

	temperatureGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thermodisp_temperature_celsius",
		Help: "last measured temperature, in degrees Celsius",
	})

	stateGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thermodisp_controller_state",
		Help: "current controller state; 0 init, 1 calibrating voltage, 2 displaying temperature",
	})
)
