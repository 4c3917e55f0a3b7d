// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package mt76x8 provides direct control of the GPIO pins on MT76x8 family SoCs
(MT7628, MT7688) by mapping the SoC registers into the process address space.

Pins are identified by id, 0 to 95, and are grouped into three [Bank]s of 32
pins, each with its own direction, data, set and reset registers.
[Resolve] maps a pin id to its bank and bit.

The registers are accessed through a [Window], a bounds checked mapping of
/dev/mem opened with [Open] and released with [Window.Close].
A [Controller] reads and writes pins through any [Registers], either a Window
or, for testing without hardware, a [Sim].

Not every pin is wired out on every board. A [Board] records which pins are
available, and [NewPin] only returns handles for those.

Mapping /dev/mem requires root permissions.

# Concurrency

The set and reset registers only affect the bits written, so levels may be
set concurrently for any pins. Changing direction is a read-modify-write of the
bank's direction register, so direction changes for pins in the same bank must
be serialized by the caller.

The package provides no arbitration between processes.

# Example Usage

Drive pin 0 high, and read pin 14:

	w, err := mt76x8.Open(mt76x8.DefaultBase, mt76x8.DefaultLength)
	if err != nil {
		return err
	}
	defer w.Close()
	c := mt76x8.NewController(w)
	board := mt76x8.ReferenceBoard()
	led, err := mt76x8.NewPin(c, board, 0)
	err = led.Init(mt76x8.Out, mt76x8.WithValue(true))
	btn, err := mt76x8.NewPin(c, board, 14)
	err = btn.Init(mt76x8.In)
	level, err := btn.Value()

Pull resistors, interrupts and pin multiplexing are not supported.
*/
package mt76x8
