// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

import "github.com/pkg/errors"

// Resolve maps a pin id to the bank controlling it and the bit offset of the
// pin within each of the bank's registers.
func Resolve(id int) (Bank, uint, error) {
	if id < 0 || id >= NumPins {
		return Bank{}, 0, errors.Wrapf(ErrUnsupportedPin, "pin %d", id)
	}
	b := Banks[id/PinsPerBank]
	return b, uint(id - b.First), nil
}

// mask returns the single bit mask for the given bit offset.
func mask(bit uint) uint32 {
	return uint32(1) << bit
}

// bitSet returns the value of bit in the register value v.
func bitSet(v uint32, bit uint) bool {
	return (v>>bit)&1 == 1
}
