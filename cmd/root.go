// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Ambient flags
	configPath string
	logLevel   string
	logFile    string
)

var (
	// cfg is the merged configuration, set before any command runs
	cfg *config.Config

	// logger is the diagnostic logger. Commands print their own output to
	// stdout; the logger writes to stderr or --log-file.
	logger = zerolog.Nop()

	// logSink is the open --log-file, if any
	logSink *os.File
)

var rootCmd = &cobra.Command{
	Use:   "tonelight",
	Short: "toneLight film scanner controller",
	Long: `tonelight - control and monitor a toneLight film-scanning light source.

Talks to the firmware's line-oriented console: sends text commands and decodes
the [API] key=value telemetry it prints back into a live device state.

Connection modes:
  Serial:    --port /dev/ttyACM0 [--baud 115200]   (--port auto picks the device)
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the TONELIGHT_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.

Settings may also come from a YAML file given with --config; flags that are
set explicitly take precedence over the file.`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logSink != nil {
			logSink.Close()
		}
	},
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device, or \"auto\"")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", bridge.DefaultBaudRate, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Ambient flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write diagnostic logs to this file")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings layers explicitly set flags over the config file (or the
// defaults), validates the result and sets up logging
func loadSettings(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		c = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		c.Connection.Port = portName
		c.Connection.URL = ""
	}
	if flags.Changed("baud") {
		c.Connection.Baud = baudRate
	}
	if flags.Changed("url") {
		c.Connection.URL = wsURL
		c.Connection.Port = ""
	}
	if flags.Changed("username") {
		c.Connection.Username = wsUsername
	}
	if flags.Changed("no-ssl-verify") {
		c.Connection.NoSSLVerify = wsNoSSLVerify
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		c.Log.File = logFile
	}

	if err := config.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.Normalize(c)
	cfg = c

	return setupLogging(cmd)
}

// setupLogging writes console-formatted logs to stderr, or JSON logs to
// the configured file. Full-screen commands must not write to stderr, so
// they get a file or nothing.
func setupLogging(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var out io.Writer
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logSink = f
		out = f
	case cmd.Annotations["fullscreen"] == "true":
		logger = zerolog.Nop()
		return nil
	default:
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}

	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}
