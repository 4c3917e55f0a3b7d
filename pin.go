// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

import (
	"fmt"

	"github.com/pkg/errors"
)

// Mode is the direction of a pin.
type Mode int

const (
	// Pin is an input.
	In Mode = 0

	// Pin is an output.
	Out Mode = 1
)

func (m Mode) String() string {
	switch m {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Pin is a handle to a single pin validated against a Board.
//
// The Pin holds no state of its own. Direction and level are held in the
// hardware and read back from there.
type Pin struct {
	id   int
	ctrl *Controller
}

// NewPin returns a handle for the pin with the given id.
//
// Returns ErrUnsupportedPin if the id lies outside the register banks, and
// ErrInvalidPin if the pin is not wired out on the board.
func NewPin(ctrl *Controller, board *Board, id int) (*Pin, error) {
	if err := board.Validate(id); err != nil {
		return nil, err
	}
	return &Pin{id: id, ctrl: ctrl}, nil
}

// ID returns the id of the pin.
func (p *Pin) ID() int {
	return p.id
}

func (p *Pin) String() string {
	return fmt.Sprintf("Pin(%d)", p.id)
}

// Init configures the pin to the given mode.
//
// The available options are [WithValue] and [WithPull].
//
// If a value is provided it is written before the mode is changed.
func (p *Pin) Init(mode Mode, options ...InitOption) error {
	if mode != In && mode != Out {
		return errors.Wrapf(ErrInvalidMode, "%s: %d", p, int(mode))
	}
	cfg := initConfig{}
	for _, o := range options {
		o.applyInitOption(&cfg)
	}
	if cfg.value != nil {
		if err := p.ctrl.SetValue(p.id, *cfg.value); err != nil {
			return err
		}
	}
	// cfg.pull is ignored as pull configuration is not implemented.
	return p.ctrl.SetDirection(p.id, mode == Out)
}

// Mode returns the current mode of the pin.
func (p *Pin) Mode() (Mode, error) {
	out, err := p.ctrl.Direction(p.id)
	if err != nil {
		return In, err
	}
	if out {
		return Out, nil
	}
	return In, nil
}

// Value returns the level of the pin.
func (p *Pin) Value() (bool, error) {
	return p.ctrl.Value(p.id)
}

// SetValue sets the level driven by the pin.
func (p *Pin) SetValue(v bool) error {
	return p.ctrl.SetValue(p.id, v)
}

// High drives the pin high.
func (p *Pin) High() error {
	return p.ctrl.SetValue(p.id, true)
}

// Low drives the pin low.
func (p *Pin) Low() error {
	return p.ctrl.SetValue(p.id, false)
}

// Toggle inverts the level driven by the pin.
func (p *Pin) Toggle() error {
	v, err := p.ctrl.Value(p.id)
	if err != nil {
		return err
	}
	return p.ctrl.SetValue(p.id, !v)
}
