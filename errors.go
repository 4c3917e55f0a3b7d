// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

import "github.com/pkg/errors"

var (
	// ErrHardwareUnavailable indicates the register window could not be
	// mapped, or has already been closed.
	ErrHardwareUnavailable = errors.New("hardware unavailable")

	// ErrUnsupportedPin indicates a pin id outside the range covered by the
	// register banks.
	ErrUnsupportedPin = errors.New("unsupported pin")

	// ErrInvalidPin indicates a pin id that is not wired out on the board.
	ErrInvalidPin = errors.New("invalid pin")

	// ErrOutOfRange indicates a register offset that falls outside the
	// mapped window, or is not 32-bit aligned.
	ErrOutOfRange = errors.New("register offset out of range")

	// ErrInvalidMode indicates a pin mode other than In or Out.
	ErrInvalidMode = errors.New("invalid mode")
)
