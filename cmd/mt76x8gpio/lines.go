// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/warthog618/go-gpiocdev"
	"github.com/warthog618/go-mt76x8"
)

// lineChip is the subset of gpiocdev.Chip used to report line usage.
type lineChip interface {
	LineInfo(offset int) (gpiocdev.LineInfo, error)
	Close() error
}

func openChip(name string) (lineChip, error) {
	c, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// chipName returns the name of the gpiochip the kernel registers for a bank.
func chipName(b mt76x8.Bank) string {
	return fmt.Sprintf("gpiochip%d", b.Index)
}

// lines reports which of the board's pins are also requested through the
// kernel GPIO driver.
//
// Driving such a pin through the registers fights with the kernel consumer.
func (a *app) lines(board *mt76x8.Board) error {
	chips := map[int]lineChip{}
	defer func() {
		for _, c := range chips {
			c.Close()
		}
	}()
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIN\tCHIP\tOFFSET\tNAME\tUSED\tCONSUMER\tDIRECTION")
	for _, id := range board.Pins() {
		b, bit, err := mt76x8.Resolve(id)
		if err != nil {
			return err
		}
		c, ok := chips[b.Index]
		if !ok {
			c, err = a.openChip(chipName(b))
			if err != nil {
				return err
			}
			chips[b.Index] = c
		}
		li, err := c.LineInfo(int(bit))
		if err != nil {
			return err
		}
		used := "-"
		if li.Used {
			used = "used"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			id, chipName(b), bit, li.Name, used, li.Consumer, direction(li.Config.Direction))
	}
	return tw.Flush()
}

func direction(d gpiocdev.LineDirection) string {
	switch d {
	case gpiocdev.LineDirectionInput:
		return "input"
	case gpiocdev.LineDirectionOutput:
		return "output"
	default:
		return "unknown"
	}
}
