// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

//go:build linux
// +build linux

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/thermodisp/controller"
)

func init() {
	tempCmd.Flags().BoolVarP(&tempOpts.Quiet, "quiet", "q", false, "don't print the temperature")
	rootCmd.AddCommand(tempCmd)
}

var (
	tempCmd = &cobra.Command{
		Use:   "temp",
		Short: "Perform a single temperature conversion and display it",
		Args:  cobra.NoArgs,
		RunE:  temp,
	}
	tempOpts = struct {
		Quiet bool
	}{}
)

func temp(cmd *cobra.Command, args []string) error {
	ac, log, err := setup(cmd)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer log.Sync()
	hw, err := openHardware(ac, needDisplay|needSensor)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer hw.Close()
	d := hw.display(ac)
	if err := d.Init(&ac.controller.Display); err != nil {
		logErr(cmd, err)
		return err
	}
	if err := hw.sensor.Configure(); err != nil {
		logErr(cmd, err)
		return err
	}
	c := controller.New(d, nil, hw.sensor, &ac.controller, controller.WithLogger(log))
	digits, err := c.RefreshTemperature(context.Background())
	if err != nil {
		logErr(cmd, err)
		return err
	}
	if !tempOpts.Quiet {
		fmt.Printf("%s: %s°C\n", hw.sensor, digits)
	}
	return nil
}
