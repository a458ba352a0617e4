// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/rs/zerolog"
)

// ConnectionState is the lifecycle state of the device connection
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateError        ConnectionState = "error"

	// StateReconnecting is reserved for automatic reconnection, which is
	// not implemented; no transition produces it
	StateReconnecting ConnectionState = "reconnecting"
)

// readLoopExitTimeout bounds how long Disconnect waits for the reader
const readLoopExitTimeout = time.Second

// Options tunes a Controller. Zero values select the defaults.
type Options struct {
	Logger         zerolog.Logger
	CommandDelay   time.Duration
	ThrottleWindow time.Duration
	LogLines       int
}

// Controller owns the connection lifecycle and everything that flows
// through it: the telemetry read loop, the device state store, the
// console log, the command queue and the throttled send path.
type Controller struct {
	opener Opener
	log    zerolog.Logger

	mu       sync.RWMutex
	state    ConnectionState
	session  *Session
	cancel   context.CancelFunc
	readDone chan struct{}
	lastErr  error

	store    *tonelight.Store
	logs     *LogBuffer
	queue    *Queue
	throttle *Throttle
	hub      *Hub

	statsMu sync.Mutex
	stats   *tonelight.Statistics
}

// NewController creates a disconnected controller that opens ports with
// opener
func NewController(opener Opener, opts Options) *Controller {
	if opts.CommandDelay == 0 {
		opts.CommandDelay = DefaultCommandDelay
	}
	if opts.ThrottleWindow == 0 {
		opts.ThrottleWindow = DefaultThrottleWindow
	}

	c := &Controller{
		opener: opener,
		log:    opts.Logger,
		state:  StateDisconnected,
		store:  tonelight.NewStore(),
		logs:   NewLogBuffer(opts.LogLines),
		hub:    NewHub(),
		stats:  tonelight.NewStatistics(),
	}
	c.queue = NewQueue(opts.CommandDelay, c.recordSent, opts.Logger)
	c.throttle = NewThrottle(opts.ThrottleWindow, c.writeNow)
	return c
}

//////////////////////////////////////////////////////////////
// Lifecycle
//////////////////////////////////////////////////////////////

// Connect opens a session, starts the telemetry reader and queues a
// status query. On failure the controller is left in StateError with no
// session resources held.
func (c *Controller) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateConnected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.state = StateConnecting
	c.lastErr = nil
	c.mu.Unlock()
	c.publishConnection()

	sess, err := OpenSession(ctx, c.opener, c.log)
	if err != nil {
		c.mu.Lock()
		if c.state != StateConnecting {
			// Disconnect was requested while the port was opening
			c.mu.Unlock()
			c.log.Debug().Err(err).Msg("connect aborted")
			return err
		}
		c.state = StateError
		c.lastErr = err
		c.mu.Unlock()
		c.log.Error().Err(err).Msg("connection failed")
		c.publishConnection()
		return err
	}

	c.mu.Lock()
	if c.state != StateConnecting {
		// Disconnect was requested while the port was opening
		c.mu.Unlock()
		sess.Close()
		return fmt.Errorf("%w: connect aborted", ErrNotConnected)
	}
	readCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.session = sess
	c.cancel = cancel
	c.readDone = done
	c.state = StateConnected
	c.store.Reset()
	c.queue.SetTransmitter(sess)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Reset()
	c.statsMu.Unlock()

	go c.readLoop(readCtx, sess, done)

	c.log.Info().Str("port", sess.Info()).Msg("connected")
	c.publishConnection()

	c.queue.Enqueue(tonelight.CmdStatus)
	return nil
}

// Disconnect cancels the reader and tears the session down. Teardown
// failures are logged; the controller always ends in StateDisconnected.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	sess, cancel, done := c.session, c.cancel, c.readDone
	c.session = nil
	c.cancel = nil
	c.readDone = nil
	c.state = StateDisconnected
	c.lastErr = nil
	c.queue.SetTransmitter(nil)
	c.mu.Unlock()

	c.throttle.Stop()

	if cancel != nil {
		cancel()
	}
	if sess != nil {
		sess.Close()
		c.log.Info().Str("port", sess.Info()).Msg("disconnected")
	}
	if done != nil {
		select {
		case <-done:
		case <-time.After(readLoopExitTimeout):
			c.log.Warn().Msg("telemetry reader did not stop")
		}
	}

	c.publishConnection()
}

// Close disconnects and releases the controller
func (c *Controller) Close() {
	c.Disconnect()
}

func (c *Controller) readLoop(ctx context.Context, sess *Session, done chan struct{}) {
	defer close(done)

	framer := tonelight.NewFramer()
	buf := make([]byte, 256)

	for {
		n, err := sess.Read(buf)
		if n > 0 {
			for _, line := range framer.Feed(buf[:n]) {
				c.handleLine(line)
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.handleRemoval(sess, err)
			return
		}
	}
}

// handleRemoval drops a session whose port failed underneath the reader
func (c *Controller) handleRemoval(sess *Session, cause error) {
	c.mu.Lock()
	if c.session != sess {
		c.mu.Unlock()
		return
	}
	c.session = nil
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = nil
	c.readDone = nil
	c.state = StateDisconnected
	c.lastErr = fmt.Errorf("%w: %w", ErrDeviceRemoved, cause)
	c.queue.SetTransmitter(nil)
	c.mu.Unlock()

	c.throttle.Stop()
	sess.Abandon()

	c.log.Warn().Err(cause).Str("port", sess.Info()).Msg("device removed")
	c.publishConnection()
}

func (c *Controller) handleLine(line string) {
	msg, err := tonelight.DecodeLine(line)

	c.logs.Append(line)
	c.hub.Publish(Event{Kind: EventLog, Line: line})

	c.statsMu.Lock()
	c.stats.Update(msg, err)
	c.statsMu.Unlock()

	if err != nil {
		c.log.Debug().Err(err).Str("line", line).Msg("skipping malformed telemetry")
		return
	}
	if msg.Warnings != nil {
		c.log.Debug().Err(msg.Warnings).Str("line", line).Msg("preset entries skipped")
	}
	if msg.Patch == nil {
		return
	}
	if !tonelight.KnownSections[msg.Patch.Path[0]] {
		c.log.Debug().Str("key", msg.Patch.Key()).Msg("telemetry for unknown section")
	}

	snap := c.store.Apply(*msg.Patch)
	c.hub.Publish(Event{Kind: EventState, State: &snap})
}

//////////////////////////////////////////////////////////////
// Sending
//////////////////////////////////////////////////////////////

func (c *Controller) connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateConnected && c.session != nil
}

// enqueue adds a command to the FIFO queue
func (c *Controller) enqueue(cmds ...string) error {
	if !c.connected() {
		return ErrNotConnected
	}
	for _, cmd := range cmds {
		c.queue.Enqueue(cmd)
	}
	return nil
}

// throttled sends through the rate-limited interactive path
func (c *Controller) throttled(cmd string) error {
	if !c.connected() {
		return ErrNotConnected
	}
	c.throttle.Send(cmd)
	return nil
}

func (c *Controller) writeNow(cmd string) {
	c.mu.RLock()
	sess := c.session
	c.mu.RUnlock()

	if sess == nil {
		c.log.Debug().Str("command", cmd).Msg("dropping command, not connected")
		return
	}
	if err := sess.WriteLine(cmd); err != nil {
		c.log.Warn().Err(err).Str("command", cmd).Msg("command not sent")
		return
	}
	c.recordSent(cmd)
}

func (c *Controller) recordSent(cmd string) {
	line := tonelight.CleanLine(CommandMarker + cmd)
	c.logs.Append(line)
	c.hub.Publish(Event{Kind: EventLog, Line: line})

	c.statsMu.Lock()
	c.stats.CountCommand()
	c.statsMu.Unlock()
}

// WaitIdle blocks until queued commands have been transmitted
func (c *Controller) WaitIdle(ctx context.Context) error {
	return c.queue.Wait(ctx)
}

//////////////////////////////////////////////////////////////
// Observation
//////////////////////////////////////////////////////////////

// State returns the connection state
func (c *Controller) State() ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// LastError returns why the last connection failed or ended, if it did
func (c *Controller) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Removed reports whether the last session ended by device removal
func (c *Controller) Removed() bool {
	return errors.Is(c.LastError(), ErrDeviceRemoved)
}

// PortInfo describes the connected port, or UnknownPortInfo
func (c *Controller) PortInfo() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return UnknownPortInfo
	}
	return c.session.Info()
}

// Snapshot returns the latest device state
func (c *Controller) Snapshot() tonelight.State {
	return c.store.Snapshot()
}

// Log returns the buffered console lines, oldest first
func (c *Controller) Log() []string {
	return c.logs.Lines()
}

// LogTail returns up to n of the newest console lines
func (c *Controller) LogTail(n int) []string {
	return c.logs.Tail(n)
}

// ClearLog empties the console log
func (c *Controller) ClearLog() {
	c.logs.Clear()
}

// Stats returns a copy of the line statistics with current rates
func (c *Controller) Stats() tonelight.Statistics {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.stats.CalculateRates()
	return *c.stats
}

// QueueLen returns the number of commands waiting to be sent
func (c *Controller) QueueLen() int {
	return c.queue.Len()
}

// Subscribe registers for change events
func (c *Controller) Subscribe(buffer int) (<-chan Event, func()) {
	return c.hub.Subscribe(buffer)
}

func (c *Controller) publishConnection() {
	c.mu.RLock()
	ev := Event{Kind: EventConnection, Connection: c.state, PortInfo: UnknownPortInfo}
	if c.session != nil {
		ev.PortInfo = c.session.Info()
	}
	if c.lastErr != nil {
		ev.Error = c.lastErr.Error()
	}
	c.mu.RUnlock()

	c.hub.Publish(ev)
}
