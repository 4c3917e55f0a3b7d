// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

// Bank describes the registers controlling a group of 32 pins.
//
// All offsets are byte offsets from the start of the register window.
type Bank struct {
	// The index of the bank, 0..2.
	Index int

	// The first pin controlled by the bank.
	First int

	// Direction, 1 for output.
	Dir uint32

	// Pin level.
	Data uint32

	// Write 1 to drive the corresponding pin high.
	Set uint32

	// Write 1 to drive the corresponding pin low.
	Reset uint32

	// Interrupt status, edge status and the rising/falling edge enables.
	//
	// These are not used by this package.
	Int  uint32
	Edge uint32
	Rena uint32
	Fena uint32
}

const (
	// PinsPerBank is the number of pins controlled by each Bank.
	PinsPerBank = 32

	// NumPins is the number of pins addressable across all banks.
	NumPins = 3 * PinsPerBank
)

// Banks are the register banks of the MT76x8 GPIO block.
var Banks = [3]Bank{
	{
		Index: 0, First: 0,
		Dir: 0x600, Data: 0x620, Set: 0x630, Reset: 0x640,
		Int: 0x690, Edge: 0x6a0, Rena: 0x650, Fena: 0x660,
	},
	{
		Index: 1, First: 32,
		Dir: 0x604, Data: 0x624, Set: 0x634, Reset: 0x644,
		Int: 0x694, Edge: 0x6a4, Rena: 0x654, Fena: 0x664,
	},
	{
		Index: 2, First: 64,
		Dir: 0x608, Data: 0x628, Set: 0x638, Reset: 0x648,
		Int: 0x698, Edge: 0x6a8, Rena: 0x658, Fena: 0x668,
	},
}

// Last returns the last pin controlled by the bank.
func (b Bank) Last() int {
	return b.First + PinsPerBank - 1
}
