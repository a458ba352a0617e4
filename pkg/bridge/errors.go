// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import "errors"

var (
	// ErrTransportUnavailable is returned when a port cannot be opened or
	// never becomes ready for reading and writing
	ErrTransportUnavailable = errors.New("transport unavailable")

	// ErrTeardownFailure wraps an error raised by one teardown step. It is
	// logged and never returned to the caller of Disconnect.
	ErrTeardownFailure = errors.New("teardown failure")

	// ErrPreconditionRejected is returned when a command intent's guard
	// fails and nothing was sent
	ErrPreconditionRejected = errors.New("precondition rejected")

	// ErrDeviceRemoved is recorded when the device disappears mid-session
	ErrDeviceRemoved = errors.New("device removed")

	// ErrNotConnected is returned for commands issued without a session
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected is returned by Connect while a session is open
	// or being opened
	ErrAlreadyConnected = errors.New("already connected")

	// ErrConnectionClosed is returned when reading from a closed WebSocket
	ErrConnectionClosed = errors.New("websocket connection closed")
)
