// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

import "fmt"

// Controller reads and writes pins through the GPIO registers.
//
// Pins are identified by id, in the range 0..NumPins-1.
//
// SetValue may be called concurrently for any pins, as the hardware applies
// only the written bits.
// SetDirection performs a read-modify-write of the bank's direction register,
// so concurrent calls for pins in the same bank must be serialized by the
// caller.
type Controller struct {
	regs Registers
}

// NewController creates a Controller accessing the GPIO block through regs.
//
// This is typically a [Window], or a [Sim] for testing.
func NewController(regs Registers) *Controller {
	return &Controller{regs: regs}
}

// Value returns the level of the pin.
func (c *Controller) Value(id int) (bool, error) {
	b, bit, err := Resolve(id)
	if err != nil {
		return false, err
	}
	v, err := c.regs.Read32(b.Data)
	if err != nil {
		return false, err
	}
	return bitSet(v, bit), nil
}

// SetDirection sets the pin as an output if output is true, else as an input.
func (c *Controller) SetDirection(id int, output bool) error {
	b, bit, err := Resolve(id)
	if err != nil {
		return err
	}
	v, err := c.regs.Read32(b.Dir)
	if err != nil {
		return err
	}
	if output {
		v |= mask(bit)
	} else {
		v &^= mask(bit)
	}
	return c.regs.Write32(b.Dir, v)
}

// SetValue drives the pin high if value is true, else low.
//
// If the pin is an input the level is latched and driven once the pin
// becomes an output.
func (c *Controller) SetValue(id int, value bool) error {
	b, bit, err := Resolve(id)
	if err != nil {
		return err
	}
	reg := b.Reset
	if value {
		reg = b.Set
	}
	return c.regs.Write32(reg, mask(bit))
}

// Direction returns true if the pin is an output.
func (c *Controller) Direction(id int) (bool, error) {
	b, bit, err := Resolve(id)
	if err != nil {
		return false, err
	}
	v, err := c.regs.Read32(b.Dir)
	if err != nil {
		return false, err
	}
	return bitSet(v, bit), nil
}

// Snapshot captures the direction and data registers of all banks.
//
// The registers are read bank by bank, so the snapshot is not atomic across
// banks.
func (c *Controller) Snapshot() (State, error) {
	var s State
	for i, b := range Banks {
		dir, err := c.regs.Read32(b.Dir)
		if err != nil {
			return State{}, err
		}
		data, err := c.regs.Read32(b.Data)
		if err != nil {
			return State{}, err
		}
		s.Dir[i] = dir
		s.Data[i] = data
	}
	return s, nil
}

// State is a snapshot of the direction and data registers.
type State struct {
	Dir  [3]uint32
	Data [3]uint32
}

// Output returns true if the pin was an output.
//
// Ids outside the banks return false.
func (s State) Output(id int) bool {
	b, bit, err := Resolve(id)
	if err != nil {
		return false
	}
	return bitSet(s.Dir[b.Index], bit)
}

// Level returns true if the pin was high.
//
// Ids outside the banks return false.
func (s State) Level(id int) bool {
	b, bit, err := Resolve(id)
	if err != nil {
		return false
	}
	return bitSet(s.Data[b.Index], bit)
}

// Change describes a pin that differs between two States.
type Change struct {
	ID int

	// True if the direction changed, and Output is the new direction.
	DirChanged bool
	Output     bool

	// True if the level changed, and Level is the new level.
	LevelChanged bool
	Level        bool
}

func (c Change) String() string {
	s := fmt.Sprintf("pin %d:", c.ID)
	if c.DirChanged {
		s += " became " + dirName(c.Output)
	}
	if c.LevelChanged {
		s += " went " + levelName(c.Level)
	}
	return s
}

// Diff returns the pins whose direction or level differ from the prior State,
// in ascending pin order.
func (s State) Diff(prior State) []Change {
	var changes []Change
	for i := range Banks {
		dd := s.Dir[i] ^ prior.Dir[i]
		ld := s.Data[i] ^ prior.Data[i]
		if dd|ld == 0 {
			continue
		}
		for bit := uint(0); bit < PinsPerBank; bit++ {
			if !bitSet(dd|ld, bit) {
				continue
			}
			changes = append(changes, Change{
				ID:           Banks[i].First + int(bit),
				DirChanged:   bitSet(dd, bit),
				Output:       bitSet(s.Dir[i], bit),
				LevelChanged: bitSet(ld, bit),
				Level:        bitSet(s.Data[i], bit),
			})
		}
	}
	return changes
}

func dirName(output bool) string {
	if output {
		return "output"
	}
	return "input"
}

func levelName(high bool) string {
	if high {
		return "high"
	}
	return "low"
}
