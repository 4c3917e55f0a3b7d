// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

// OpenOption defines the interface required to provide an option to Open.
type OpenOption interface {
	applyOpenOption(*openConfig)
}

type openConfig struct {
	device string
}

// DeviceOption defines the device mapped by Open.
type DeviceOption string

// WithDevice returns an option that maps the given device instead of
// /dev/mem.
func WithDevice(path string) DeviceOption {
	return DeviceOption(path)
}

func (o DeviceOption) applyOpenOption(c *openConfig) {
	c.device = string(o)
}

// BoardOption defines the interface required to provide an option to
// NewBoard.
type BoardOption interface {
	applyBoardOption(*Board)
}

// NamedPin is an option that marks a pin as wired out on the board.
type NamedPin struct {
	ID   int
	Name string
}

// WithPin returns an option that marks a pin as wired out on the board.
//
// Ids outside the addressable range are ignored.
func WithPin(id int) NamedPin {
	return NamedPin{ID: id}
}

// WithNamedPin returns an option that marks a pin as wired out on the board,
// and gives it a name.
//
// Pin names do not need to be unique.
func WithNamedPin(id int, name string) NamedPin {
	return NamedPin{id, name}
}

func (o NamedPin) applyBoardOption(b *Board) {
	if o.ID < 0 || o.ID >= NumPins {
		return
	}
	b.pins[o.ID] = PinEntry{Valid: true, Name: o.Name}
}

// InitOption defines the interface required to provide an option to Pin.Init.
type InitOption interface {
	applyInitOption(*initConfig)
}

type initConfig struct {
	value *bool
	pull  Pull
}

// ValueOption is an option that sets the initial level of a pin.
type ValueOption bool

// WithValue returns an option that sets the level of the pin.
//
// The level is written before the direction of the pin is changed, so a pin
// switched to output starts driving this level rather than whatever was left
// in the data register.
func WithValue(v bool) ValueOption {
	return ValueOption(v)
}

func (o ValueOption) applyInitOption(c *initConfig) {
	v := bool(o)
	c.value = &v
}

// Pull selects the pull resistor applied to a pin.
type Pull int

const (
	// No pull resistor.
	PullNone Pull = iota

	// Pull up to the supply rail.
	PullUp

	// Pull down to ground.
	PullDown
)

// PullOption is an option that selects a pull resistor.
type PullOption Pull

// WithPull returns an option that selects the pull resistor for a pin.
//
// Pull configuration is not implemented for the MT76x8.
// The option is accepted so callers can describe the pin fully, but it has no
// effect on the hardware.
func WithPull(p Pull) PullOption {
	return PullOption(p)
}

func (o PullOption) applyInitOption(c *initConfig) {
	c.pull = Pull(o)
}

// SimOption defines the interface required to provide an option to NewSim.
type SimOption interface {
	applySimOption(*Sim)
}

// LevelOption is an option that pulls a simulated pin to a level.
type LevelOption struct {
	ID    int
	Level int
}

// WithLevel returns an option that pulls a simulated pin to the given level.
//
// The level is what the pin reads while it is an input.
func WithLevel(id int, level int) LevelOption {
	return LevelOption{id, level}
}

func (o LevelOption) applySimOption(s *Sim) {
	s.pull(o.ID, o.Level)
}
