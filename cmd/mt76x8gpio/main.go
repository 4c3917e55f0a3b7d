// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// mt76x8gpio reads and drives MT76x8 GPIO pins through /dev/mem.
//
//	mt76x8gpio [flags] get <pin>
//	mt76x8gpio [flags] set <pin> <0|1>
//	mt76x8gpio [flags] mode <pin> <in|out>
//	mt76x8gpio [flags] dump
//	mt76x8gpio [flags] lines
//	mt76x8gpio [flags] run <script.lua>
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/warthog618/go-mt76x8"
	"github.com/warthog618/go-mt76x8/machine"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/term"
)

func main() {
	a := &app{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		tty:      term.IsTerminal(int(os.Stdout.Fd())),
		openRegs: openWindow,
		openChip: openChip,
	}
	os.Exit(a.run(os.Args[1:]))
}

// app holds the environment of a single invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// true if stdout is a terminal.
	tty bool

	log *slog.Logger

	openRegs func(device string, base, length uintptr) (mt76x8.Registers, func() error, error)
	openChip func(name string) (lineChip, error)
}

func openWindow(device string, base, length uintptr) (mt76x8.Registers, func() error, error) {
	w, err := mt76x8.Open(base, length, mt76x8.WithDevice(device))
	if err != nil {
		return nil, nil, err
	}
	return w, w.Close, nil
}

// maxAddr is the largest physical address or length a uintptr can hold.
var maxAddr = uint64(^uintptr(0))

// addrArg converts an address flag, rejecting values beyond the address width.
func addrArg(name string, v uint64) (uintptr, error) {
	if v > maxAddr {
		return 0, errors.Errorf("%s 0x%x exceeds address width", name, v)
	}
	return uintptr(v), nil
}

func (a *app) run(args []string) (status int) {
	fs := flag.NewFlagSet("mt76x8gpio", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	device := fs.String("device", mt76x8.DefaultDevice, "physical memory device")
	base := fs.Uint64("base", uint64(mt76x8.DefaultBase), "physical address of the register window")
	length := fs.Uint64("length", uint64(mt76x8.DefaultLength), "length of the register window")
	boardPath := fs.String("board", "", "YAML board description (default reference board)")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: mt76x8gpio [flags] get|set|mode|dump|lines|run [args]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}
	baseAddr, err := addrArg("base", *base)
	if err != nil {
		a.log.Error("flags", "err", err)
		return 2
	}
	lengthAddr, err := addrArg("length", *length)
	if err != nil {
		a.log.Error("flags", "err", err)
		return 2
	}
	board := mt76x8.ReferenceBoard()
	if *boardPath != "" {
		b, err := mt76x8.LoadBoardFile(*boardPath)
		if err != nil {
			a.log.Error("load board", "err", err)
			return 1
		}
		board = b
	}
	a.log.Debug("board", "name", board.Name(), "pins", board.Pins())

	cmd, cargs := fs.Arg(0), fs.Args()[1:]
	if cmd == "lines" {
		if err := a.lines(board); err != nil {
			a.log.Error(cmd, "err", err)
			return 1
		}
		return 0
	}
	regs, closer, err := a.openRegs(*device, baseAddr, lengthAddr)
	if err != nil {
		a.log.Error("open registers", "device", *device, "err", err)
		return 1
	}
	defer func() {
		if err := closer(); err != nil {
			a.log.Error("close registers", "err", err)
			if status == 0 {
				status = 1
			}
		}
	}()
	a.log.Debug("mapped registers", "device", *device, "base", fmt.Sprintf("0x%x", *base), "length", *length)

	ctrl := mt76x8.NewController(regs)
	switch cmd {
	case "get":
		err = a.get(ctrl, board, cargs)
	case "set":
		err = a.set(ctrl, board, cargs)
	case "mode":
		err = a.mode(ctrl, board, cargs)
	case "dump":
		err = a.dump(ctrl, board)
	case "run":
		err = a.script(ctrl, board, cargs)
	default:
		fs.Usage()
		return 2
	}
	if err != nil {
		a.log.Error(cmd, "err", err)
		return 1
	}
	return 0
}

// pinArg parses and validates a pin id argument.
func pinArg(ctrl *mt76x8.Controller, board *mt76x8.Board, arg string) (*mt76x8.Pin, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return nil, errors.Errorf("invalid pin id '%s'", arg)
	}
	return mt76x8.NewPin(ctrl, board, id)
}

func (a *app) get(ctrl *mt76x8.Controller, board *mt76x8.Board, args []string) error {
	if len(args) != 1 {
		return errors.New("get requires a pin")
	}
	p, err := pinArg(ctrl, board, args[0])
	if err != nil {
		return err
	}
	v, err := p.Value()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, levelDigit(v))
	return nil
}

func (a *app) set(ctrl *mt76x8.Controller, board *mt76x8.Board, args []string) error {
	if len(args) != 2 {
		return errors.New("set requires a pin and a level")
	}
	p, err := pinArg(ctrl, board, args[0])
	if err != nil {
		return err
	}
	var v bool
	switch args[1] {
	case "0":
	case "1":
		v = true
	default:
		return errors.Errorf("invalid level '%s'", args[1])
	}
	a.log.Debug("set", "pin", p.ID(), "level", v)
	return p.Init(mt76x8.Out, mt76x8.WithValue(v))
}

func (a *app) mode(ctrl *mt76x8.Controller, board *mt76x8.Board, args []string) error {
	if len(args) != 2 {
		return errors.New("mode requires a pin and a mode")
	}
	p, err := pinArg(ctrl, board, args[0])
	if err != nil {
		return err
	}
	var m mt76x8.Mode
	switch args[1] {
	case "in":
		m = mt76x8.In
	case "out":
		m = mt76x8.Out
	default:
		return errors.Errorf("invalid mode '%s'", args[1])
	}
	a.log.Debug("mode", "pin", p.ID(), "mode", m)
	return p.Init(m)
}

// dump lists the direction and level of each pin on the board.
//
// On a terminal the list is a table, otherwise one id=dir,level per line.
func (a *app) dump(ctrl *mt76x8.Controller, board *mt76x8.Board) error {
	s, err := ctrl.Snapshot()
	if err != nil {
		return err
	}
	if !a.tty {
		for _, id := range board.Pins() {
			fmt.Fprintf(a.stdout, "%d=%s,%d\n", id, modeOf(s, id), levelDigit(s.Level(id)))
		}
		return nil
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIN\tNAME\tMODE\tLEVEL")
	for _, id := range board.Pins() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", id, board.Entry(id).Name, modeOf(s, id), levelDigit(s.Level(id)))
	}
	return tw.Flush()
}

func (a *app) script(ctrl *mt76x8.Controller, board *mt76x8.Board, args []string) error {
	if len(args) != 1 {
		return errors.New("run requires a script")
	}
	L := lua.NewState()
	defer L.Close()
	machine.Preload(L, ctrl, board)
	a.log.Debug("run", "script", args[0])
	return L.DoFile(args[0])
}

func modeOf(s mt76x8.State, id int) mt76x8.Mode {
	if s.Output(id) {
		return mt76x8.Out
	}
	return mt76x8.In
}

func levelDigit(v bool) int {
	if v {
		return 1
	}
	return 0
}
