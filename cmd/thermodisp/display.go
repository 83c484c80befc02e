// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

//go:build linux
// +build linux

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	testCmd.Flags().DurationVarP(&testOpts.Duration, "duration", "d", 2*time.Second, "time to hold test mode")
	rootCmd.AddCommand(blankCmd)
	rootCmd.AddCommand(testCmd)
}

var (
	blankCmd = &cobra.Command{
		Use:   "blank",
		Short: "Blank the display and place the driver in shutdown",
		Args:  cobra.NoArgs,
		RunE:  blank,
	}
	testCmd = &cobra.Command{
		Use:     "test",
		Short:   "Light all segments of the display",
		Args:    cobra.NoArgs,
		RunE:    test,
		Example: "  thermodisp test -d 5s",
	}
	testOpts = struct {
		Duration time.Duration
	}{}
)

func blank(cmd *cobra.Command, args []string) error {
	ac, log, err := setup(cmd)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer log.Sync()
	hw, err := openHardware(ac, needDisplay)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer hw.Close()
	d := hw.display(ac)
	d.Blank()
	d.Shutdown(true)
	return nil
}

func test(cmd *cobra.Command, args []string) error {
	ac, log, err := setup(cmd)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer log.Sync()
	hw, err := openHardware(ac, needDisplay)
	if err != nil {
		logErr(cmd, err)
		return err
	}
	defer hw.Close()
	d := hw.display(ac)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	d.DisplayTest(true)
	defer d.DisplayTest(false)
	select {
	case <-ctx.Done():
	case <-time.After(testOpts.Duration):
	}
	return nil
}
