// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Board describes which pins are wired out on a particular board.
//
// A Board is immutable once constructed.
type Board struct {
	name string
	pins [NumPins]PinEntry
}

// PinEntry describes a single pin on a Board.
type PinEntry struct {
	// True if the pin is wired out and may be used.
	Valid bool

	// An optional identifying name, e.g. the header position.
	Name string
}

// NewBoard constructs a Board with the name and options provided.
//
// Pins not named by an option are not valid on the board.
//
// The available options are [WithPin] and [WithNamedPin].
func NewBoard(name string, options ...BoardOption) *Board {
	b := &Board{name: name}
	for _, o := range options {
		o.applyBoardOption(b)
	}
	return b
}

// ReferenceBoard returns the Board for the reference MT7688 breakout.
func ReferenceBoard() *Board {
	return NewBoard("reference",
		WithPin(0),
		WithPin(14),
		WithPin(15),
		WithPin(16),
		WithPin(17),
		WithPin(39),
		WithPin(40),
		WithPin(41),
		WithPin(42),
	)
}

// Name returns the name of the board.
func (b *Board) Name() string {
	return b.name
}

// Validate checks that the pin exists and is wired out on the board.
//
// Returns ErrUnsupportedPin for ids outside the register banks, and
// ErrInvalidPin for ids not wired out on the board.
func (b *Board) Validate(id int) error {
	if id < 0 || id >= NumPins {
		return errors.Wrapf(ErrUnsupportedPin, "pin %d", id)
	}
	if !b.pins[id].Valid {
		return errors.Wrapf(ErrInvalidPin, "pin %d not available on board %s", id, b.name)
	}
	return nil
}

// Entry returns the board entry for the pin.
//
// Ids outside the register banks return an invalid entry.
func (b *Board) Entry(id int) PinEntry {
	if id < 0 || id >= NumPins {
		return PinEntry{}
	}
	return b.pins[id]
}

// Pins returns the ids of the valid pins, in ascending order.
func (b *Board) Pins() []int {
	var ids []int
	for id, p := range b.pins {
		if p.Valid {
			ids = append(ids, id)
		}
	}
	return ids
}

// boardFile is the YAML form of a Board.
type boardFile struct {
	Name string `yaml:"name"`
	Pins []struct {
		ID   *int   `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"pins"`
}

// LoadBoard reads a Board from its YAML description.
//
// e.g.
//
//	name: reference
//	pins:
//	  - id: 0
//	  - id: 14
//	    name: SPI_CS1
func LoadBoard(r io.Reader) (*Board, error) {
	var f boardFile
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode board")
	}
	if f.Name == "" {
		return nil, errors.New("board has no name")
	}
	var options []BoardOption
	for i, p := range f.Pins {
		if p.ID == nil {
			return nil, errors.Errorf("board %s: pin entry %d has no id", f.Name, i)
		}
		if *p.ID < 0 || *p.ID >= NumPins {
			return nil, errors.Wrapf(ErrUnsupportedPin, "board %s: pin %d", f.Name, *p.ID)
		}
		options = append(options, WithNamedPin(*p.ID, p.Name))
	}
	return NewBoard(f.Name, options...), nil
}

// LoadBoardFile reads a Board from the YAML file at path.
func LoadBoardFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := LoadBoard(f)
	return b, errors.Wrap(err, path)
}
