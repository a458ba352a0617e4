// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"os"

	"github.com/Thermoquad/tonelight/pkg/api"
	"github.com/spf13/cobra"

	_ "github.com/Thermoquad/tonelight/docs"
)

var (
	serveAddr    string
	serveConnect bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and event stream for the browser control panel",
	Long: `Run the HTTP backend for the browser control panel.

The REST API lives under /api/v1: connection management, device state, the
console log, raw commands, motor, shutter, LED and preset controls, and the
host-side preset library. GET /api/v1/events upgrades to a WebSocket that
pushes connection, state and log events as JSON.

The device is connected on request (POST /api/v1/connection), or at startup
with --connect. A removed device is not reconnected automatically.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveConnect, "connect", false, "Connect to the device at startup")
}

// @title           toneLight API
// @version         1.0
// @description     REST API and event stream for the toneLight browser control panel

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr == "" {
		serveAddr = cfg.Serve.Addr
	}
	connectAtStart := serveConnect || cfg.Serve.Connect

	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()
	logger.Info().Str("path", library.Path()).Msg("preset library opened")

	ctrl, err := newController()
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if connectAtStart {
		if err := ctrl.Connect(context.Background()); err != nil {
			// The panel can retry through the API
			logger.Warn().Err(err).Msg("initial connect failed")
		}
	}

	router := api.NewRouter(ctrl, library, api.Options{
		Logger:      logger,
		CORSOrigins: cfg.Serve.CORSOrigins,
	})

	// Handle shutdown gracefully
	ctx, stop := signalContext()
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		ctrl.Close()
		if err := library.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close preset library")
		}
		os.Exit(0)
	}()

	logger.Info().Str("address", serveAddr).Msg("starting API server")
	return router.Run(serveAddr)
}
