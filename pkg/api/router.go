// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package api serves the browser control panel: a REST surface over the
// command intents and a WebSocket stream of connection, state and log
// events.
package api

import (
	"context"
	"net/http"

	"github.com/Thermoquad/tonelight/pkg/bridge"
	"github.com/Thermoquad/tonelight/pkg/presetstore"
	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Device is the part of *bridge.Controller the API drives
type Device interface {
	Connect(ctx context.Context) error
	Disconnect()
	State() bridge.ConnectionState
	LastError() error
	Removed() bool
	PortInfo() string
	Snapshot() tonelight.State
	Log() []string
	LogTail(n int) []string
	ClearLog()
	Stats() tonelight.Statistics
	Subscribe(buffer int) (<-chan bridge.Event, func())

	MoveMotor(dir tonelight.Direction, jog bool) error
	StopMotor() error
	SetMotorMode(mode tonelight.MotorMode) error
	SetMotorSetting(name string, value float64) error
	Shoot() error
	ToggleTriplet() error
	SetShutterSetting(name string, value float64) error
	ToggleDark() error
	SetLED(ch tonelight.LEDChannel, value int) error
	LoadPreset(n int) error
	SavePreset(n int) error
	PushPreset(n int, slot tonelight.PresetSlot) error
	PushPresetSlots(slots []tonelight.PresetSlot) (int, error)
	SetDebugLevel(level tonelight.DebugLevel) error
	Send(cmd string) error
	SendQueued(cmd string) error
}

// Library is the host-side preset library
type Library interface {
	Load(ctx context.Context) ([]presetstore.Preset, error)
	Get(ctx context.Context, name string) (presetstore.Preset, error)
	Save(ctx context.Context, preset presetstore.Preset) ([]presetstore.Preset, error)
	Delete(ctx context.Context, name string) ([]presetstore.Preset, error)
}

var _ Device = (*bridge.Controller)(nil)
var _ Library = (*presetstore.Store)(nil)

// Options configures the router
type Options struct {
	Logger      zerolog.Logger
	CORSOrigins []string
}

// Router holds the Gin engine and dependencies
type Router struct {
	engine  *gin.Engine
	device  Device
	library Library
	log     zerolog.Logger
}

// NewRouter creates a new API router
func NewRouter(device Device, library Library, opts Options) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine, opts.Logger, opts.CORSOrigins)

	r := &Router{
		engine:  engine,
		device:  device,
		library: library,
		log:     opts.Logger,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	r.engine.GET("/health", r.health)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", r.health)

		conn := v1.Group("/connection")
		{
			conn.GET("", r.getConnection)
			conn.POST("", r.connect)
			conn.DELETE("", r.disconnect)
		}

		v1.GET("/state", r.getState)
		v1.GET("/log", r.getLog)
		v1.DELETE("/log", r.clearLog)
		v1.POST("/commands", r.sendCommand)
		v1.GET("/events", r.events)

		motor := v1.Group("/motor")
		{
			motor.POST("/move", r.moveMotor)
			motor.POST("/stop", r.stopMotor)
			motor.PUT("/mode", r.setMotorMode)
			motor.PUT("/settings/:name", r.setMotorSetting)
		}

		shutter := v1.Group("/shutter")
		{
			shutter.POST("/shoot", r.shoot)
			shutter.POST("/triplet", r.toggleTriplet)
			shutter.PUT("/settings/:name", r.setShutterSetting)
		}

		led := v1.Group("/led")
		{
			led.POST("/dark", r.toggleDark)
			led.PUT("/channels/:channel", r.setChannel)
			led.POST("/presets/:slot/load", r.loadPreset)
			led.POST("/presets/:slot/save", r.savePreset)
			led.PUT("/presets/:slot", r.pushPreset)
		}

		v1.PUT("/debug/level", r.setDebugLevel)

		presets := v1.Group("/presets")
		{
			presets.GET("", r.listPresets)
			presets.PUT("/:name", r.putPreset)
			presets.DELETE("/:name", r.deletePreset)
			presets.POST("/:name/push", r.pushLibraryPreset)
		}
	}
}

// Handler exposes the engine for embedding and tests
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
