// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Thermoquad/tonelight/pkg/tonelight"
	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Port is a duplex byte stream to the device
type Port interface {
	io.Reader
	io.Writer
	io.Closer
}

// Opener opens a fresh port and describes it for display
type Opener func(ctx context.Context) (Port, string, error)

// Optional Port capabilities used during open and teardown
type (
	readier interface {
		Ready() bool
	}
	readCanceler interface {
		CancelRead() error
	}
	writeCloser interface {
		CloseWrite() error
	}
)

// UnknownPortInfo is shown when a port cannot describe itself
const UnknownPortInfo = "Unknown Port"

// USB identifiers the toneLight controller enumerates with
const (
	EspressifVID = "303A"
	EspressifPID = "0002"
)

//////////////////////////////////////////////////////////////
// Serial
//////////////////////////////////////////////////////////////

// SerialPort wraps a serial port
type SerialPort struct {
	port serial.Port
}

// Read blocks until data arrives. A zero-length read without error means
// the port went away and is reported as io.EOF.
func (s *SerialPort) Read(p []byte) (int, error) {
	n, err := s.port.Read(p)
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

func (s *SerialPort) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *SerialPort) Close() error {
	return s.port.Close()
}

// Ready reports whether the port still answers modem status queries.
// Ports that do not support them (pseudo terminals) count as ready.
func (s *SerialPort) Ready() bool {
	_, err := s.port.GetModemStatusBits()
	var portErr *serial.PortError
	if errors.As(err, &portErr) && portErr.Code() == serial.PortClosed {
		return false
	}
	return true
}

// CancelRead discards unread input
func (s *SerialPort) CancelRead() error {
	return s.port.ResetInputBuffer()
}

// CloseWrite waits for pending output to be transmitted
func (s *SerialPort) CloseWrite() error {
	return s.port.Drain()
}

// OpenSerialPort opens a serial port at 8N1
func OpenSerialPort(portName string, baudRate int) (*SerialPort, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return &SerialPort{port: port}, nil
}

// PortDetails describes one serial port found on the system
type PortDetails struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// IsEspressif reports whether the port carries Espressif's USB vendor ID
func (p PortDetails) IsEspressif() bool {
	return p.IsUSB && strings.EqualFold(p.VID, EspressifVID)
}

// IsToneLight reports whether the port matches the controller's VID and PID
func (p PortDetails) IsToneLight() bool {
	return p.IsEspressif() && shortHex(p.PID) == shortHex(EspressifPID)
}

// USBInfo renders "VID:303a PID:2", or "" for non-USB ports
func (p PortDetails) USBInfo() string {
	if !p.IsUSB {
		return ""
	}
	return fmt.Sprintf("VID:%s PID:%s", shortHex(p.VID), shortHex(p.PID))
}

func shortHex(s string) string {
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return strings.ToLower(s)
	}
	return strconv.FormatUint(n, 16)
}

// ListPorts enumerates serial ports with their USB identifiers
func ListPorts() ([]PortDetails, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate ports: %w", err)
	}
	out := make([]PortDetails, 0, len(ports))
	for _, p := range ports {
		out = append(out, PortDetails{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	return out, nil
}

// SelectPort picks the controller first, then any Espressif device, then
// any USB port, then the first port listed
func SelectPort(ports []PortDetails) (PortDetails, error) {
	for _, p := range ports {
		if p.IsToneLight() {
			return p, nil
		}
	}
	for _, p := range ports {
		if p.IsEspressif() {
			return p, nil
		}
	}
	for _, p := range ports {
		if p.IsUSB {
			return p, nil
		}
	}
	if len(ports) > 0 {
		return ports[0], nil
	}
	return PortDetails{}, errors.New("no serial ports found")
}

// SerialOpener returns an Opener for a named port, or for the best
// candidate when portName is "auto"
func SerialOpener(portName string, baudRate int) Opener {
	return func(ctx context.Context) (Port, string, error) {
		details := PortDetails{Name: portName}
		if ports, err := ListPorts(); err == nil {
			if portName == "auto" {
				if details, err = SelectPort(ports); err != nil {
					return nil, "", err
				}
			} else {
				for _, p := range ports {
					if p.Name == portName {
						details = p
						break
					}
				}
			}
		} else if portName == "auto" {
			return nil, "", err
		}

		port, err := OpenSerialPort(details.Name, baudRate)
		if err != nil {
			return nil, "", err
		}

		info := fmt.Sprintf("Serial: %s @ %d baud", details.Name, baudRate)
		if usb := details.USBInfo(); usb != "" {
			info += " (" + usb + ")"
		}
		return port, info, nil
	}
}

//////////////////////////////////////////////////////////////
// WebSocket
//////////////////////////////////////////////////////////////

// WebSocketPort carries the console over WebSocket frames, one or more
// lines per frame
type WebSocketPort struct {
	conn      *websocket.Conn
	buf       []byte
	bufOffset int
	closed    bool // Track if connection has failed/closed
}

func (w *WebSocketPort) Read(p []byte) (int, error) {
	if w.closed {
		return 0, ErrConnectionClosed
	}

	if w.bufOffset < len(w.buf) {
		n := copy(p, w.buf[w.bufOffset:])
		w.bufOffset += n
		return n, nil
	}

	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.closed = true
			return 0, err
		}

		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		if len(data) == 0 {
			continue
		}

		w.buf = data
		w.bufOffset = 0
		n := copy(p, w.buf)
		w.bufOffset = n
		return n, nil
	}
}

func (w *WebSocketPort) Write(p []byte) (int, error) {
	err := w.conn.WriteMessage(websocket.TextMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WebSocketPort) Close() error {
	return w.conn.Close()
}

// CancelRead unblocks a pending ReadMessage
func (w *WebSocketPort) CancelRead() error {
	return w.conn.SetReadDeadline(time.Now())
}

// CloseWrite sends a normal closure frame
func (w *WebSocketPort) CloseWrite() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	return w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

// WebSocketOptions configures a WebSocket dial
type WebSocketOptions struct {
	URL           string
	Username      string
	Password      string
	SkipSSLVerify bool
}

// DialWebSocket opens a WebSocket connection with HTTP Basic auth
func DialWebSocket(ctx context.Context, opts WebSocketOptions) (*WebSocketPort, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch u.Scheme {
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: opts.SkipSSLVerify,
		}
	}

	headers := http.Header{}
	if opts.Username != "" && opts.Password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(opts.Username + ":" + opts.Password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, opts.URL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	return &WebSocketPort{conn: conn}, nil
}

// WebSocketOpener returns an Opener dialing the given endpoint
func WebSocketOpener(opts WebSocketOptions) Opener {
	return func(ctx context.Context) (Port, string, error) {
		port, err := DialWebSocket(ctx, opts)
		if err != nil {
			return nil, "", err
		}
		return port, "WebSocket: " + opts.URL, nil
	}
}

// DefaultBaudRate is the baud rate used when none is configured
const DefaultBaudRate = tonelight.DefaultBaudRate
