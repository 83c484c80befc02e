// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/thermodisp/controller"
	"github.com/warthog618/thermodisp/readout"
)

func init() {
	vccCmd.Flags().IntVarP(&vccOpts.Samples, "samples", "n", 0, "number of samples to average (default startup.samples)")
	vccCmd.Flags().BoolVarP(&vccOpts.Quiet, "quiet", "q", false, "don't print the voltage")
	rootCmd.AddCommand(vccCmd)
}

var (
	vccCmd = &cobra.Command{
		Use:     "vcc",
		Short:   "Measure and display the supply voltage",
		Args:    cobra.NoArgs,
		RunE:    vcc,
		Example: "  thermodisp vcc -n 100",
	}
	vccOpts = struct {
		Samples int
		Quiet   bool
	}{}
)

func vcc(cmd *cobra.Command, args []string) error {
	ac, log, err := setup(cmd)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer log.Sync()
	hw, err := openHardware(ac, needDisplay|needADC)
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
	n := vccOpts.Samples
	if n == 0 {
		n = ac.controller.Samples
	}
	c := controller.New(d, hw.vcc(ac), nil, &ac.controller, controller.WithLogger(log))
	mv, err := c.ShowVoltage(n)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	if !vccOpts.Quiet {
		fmt.Printf("%sV\n", readout.Voltage(mv))
	}
	return nil
}
