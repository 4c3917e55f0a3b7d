// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

import (
	"sync"

	"github.com/pkg/errors"
)

const (
	// Line is low.
	LevelInactive int = iota

	// Line is high.
	LevelActive
)

// SimLength is the length of the register block provided by a Sim.
const SimLength = DefaultLength

// Sim is an in-memory simulation of the MT76x8 GPIO registers.
//
// It implements Registers, so a Controller can be driven against it in place
// of a Window.
//
// The SET and RESET registers behave as in hardware, setting or clearing the
// written bits of the data latch, and read as zero.
// The data register reads as the latch for outputs, and for inputs reads as
// the level the pin is pulled to, or the latch if the pin is not pulled.
// All other registers are plain storage.
//
// A Sim is safe for concurrent use.
type Sim struct {
	mu sync.Mutex

	regs [SimLength / 4]uint32

	// the output latch for each bank.
	latch [3]uint32

	// the pins with a pull applied.
	pulled [3]uint32

	// the levels of the pulled pins.
	pullLevel [3]uint32

	writes []Write

	closed bool
}

// Write records a write to a Sim register.
type Write struct {
	Offset uint32
	Value  uint32
}

// NewSim constructs a Sim based on the provided options.
//
// The available option is [WithLevel].
//
// All pins start as unpulled inputs with the latch clear.
func NewSim(options ...SimOption) *Sim {
	s := &Sim{}
	for _, o := range options {
		o.applySimOption(s)
	}
	return s
}

// Close marks the sim as closed.
//
// Subsequent register accesses return ErrHardwareUnavailable.
// Closing a closed sim is a no-op.
func (s *Sim) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Read32 reads the simulated register at the given offset.
func (s *Sim) Read32(offset uint32) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(offset); err != nil {
		return 0, err
	}
	for i, b := range Banks {
		switch offset {
		case b.Data:
			return s.data(i), nil
		case b.Set, b.Reset:
			return 0, nil
		}
	}
	return s.regs[offset/4], nil
}

// Write32 writes the simulated register at the given offset.
func (s *Sim) Write32(offset uint32, value uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(offset); err != nil {
		return err
	}
	s.writes = append(s.writes, Write{offset, value})
	for i, b := range Banks {
		switch offset {
		case b.Data:
			s.latch[i] = value
			return nil
		case b.Set:
			s.latch[i] |= value
			return nil
		case b.Reset:
			s.latch[i] &^= value
			return nil
		}
	}
	s.regs[offset/4] = value
	return nil
}

// Writes returns the register writes made to the sim, oldest first.
func (s *Sim) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := make([]Write, len(s.writes))
	copy(w, s.writes)
	return w
}

// ClearWrites discards the record of register writes.
func (s *Sim) ClearWrites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = nil
}

// Level returns the level the pin is at.
//
// For an output this is the level being driven by the latch.
func (s *Sim) Level(id int) (int, error) {
	b, bit, err := Resolve(id)
	if err != nil {
		return LevelInactive, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if bitSet(s.data(b.Index), bit) {
		return LevelActive, nil
	}
	return LevelInactive, nil
}

// Pull returns the level the pin is pulled to.
//
// Pins that have never been pulled return LevelInactive.
func (s *Sim) Pull(id int) (int, error) {
	b, bit, err := Resolve(id)
	if err != nil {
		return LevelInactive, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if bitSet(s.pullLevel[b.Index], bit) {
		return LevelActive, nil
	}
	return LevelInactive, nil
}

// Pulldown pulls the pin low.
func (s *Sim) Pulldown(id int) error {
	return s.SetPull(id, LevelInactive)
}

// Pullup pulls the pin high.
func (s *Sim) Pullup(id int) error {
	return s.SetPull(id, LevelActive)
}

// SetPull pulls the pin to the given level.
//
// The pull only affects the level read while the pin is an input.
func (s *Sim) SetPull(id int, level int) error {
	if _, _, err := Resolve(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pull(id, level)
	return nil
}

// Toggle flips the pull of the given pin.
//
// If it was pulled up it becomes pulled down, and vice versa.
func (s *Sim) Toggle(id int) error {
	b, bit, err := Resolve(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	level := LevelActive
	if bitSet(s.pullLevel[b.Index], bit) {
		level = LevelInactive
	}
	s.pull(id, level)
	return nil
}

// pull applies the pull to a pin, ignoring ids outside the banks.
//
// Must be called with mu held, or before the sim is shared.
func (s *Sim) pull(id int, level int) {
	b, bit, err := Resolve(id)
	if err != nil {
		return
	}
	s.pulled[b.Index] |= mask(bit)
	if level == LevelInactive {
		s.pullLevel[b.Index] &^= mask(bit)
	} else {
		s.pullLevel[b.Index] |= mask(bit)
	}
}

// data returns the value of the data register of bank i.
//
// Must be called with mu held.
func (s *Sim) data(i int) uint32 {
	dir := s.regs[Banks[i].Dir/4]
	inputs := s.pulled[i] &^ dir
	return s.latch[i]&^inputs | s.pullLevel[i]&inputs
}

// check confirms the sim is open and the offset is a valid register.
//
// Must be called with mu held.
func (s *Sim) check(offset uint32) error {
	if s.closed {
		return errors.Wrapf(ErrHardwareUnavailable, "access to 0x%03x", offset)
	}
	return checkOffset(offset, int(SimLength))
}
