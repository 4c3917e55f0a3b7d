// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package machine provides a Lua "machine" module exposing MT76x8 pins to
// scripts, in the style of the MicroPython machine.Pin class.
//
//	local machine = require("machine")
//	local led = machine.Pin(0, machine.Pin.OUT, nil, 1)
//	led:toggle()
//	local btn = machine.Pin(14, machine.Pin.IN)
//	print(btn, btn:value())
package machine

import (
	"github.com/warthog618/go-mt76x8"
	lua "github.com/yuin/gopher-lua"
)

const pinTypeName = "machine.Pin"

// Preload registers the machine module with the Lua state, so scripts can
// require("machine").
//
// Pins are validated against the board and accessed through ctrl.
func Preload(L *lua.LState, ctrl *mt76x8.Controller, board *mt76x8.Board) {
	m := &module{ctrl: ctrl, board: board}
	L.PreloadModule("machine", m.load)
}

type module struct {
	ctrl  *mt76x8.Controller
	board *mt76x8.Board
}

func (m *module) load(L *lua.LState) int {
	mt := L.NewTypeMetatable(pinTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"init":   pinInit,
		"value":  pinValue,
		"on":     pinOn,
		"off":    pinOff,
		"toggle": pinToggle,
		"mode":   pinMode,
		"id":     pinID,
	}))
	L.SetField(mt, "__tostring", L.NewFunction(pinString))

	class := L.NewTable()
	L.SetField(class, "IN", lua.LNumber(mt76x8.In))
	L.SetField(class, "OUT", lua.LNumber(mt76x8.Out))
	L.SetField(class, "PULL_UP", lua.LNumber(mt76x8.PullUp))
	L.SetField(class, "PULL_DOWN", lua.LNumber(mt76x8.PullDown))
	cmt := L.NewTable()
	L.SetField(cmt, "__call", L.NewFunction(m.newPin))
	L.SetMetatable(class, cmt)

	mod := L.NewTable()
	L.SetField(mod, "Pin", class)
	L.SetField(mod, "board", lua.LString(m.board.Name()))
	L.Push(mod)
	return 1
}

// newPin implements machine.Pin(id [, mode [, pull [, value]]]).
//
// Argument 1 is the Pin class itself.
func (m *module) newPin(L *lua.LState) int {
	id := L.CheckInt(2)
	p, err := mt76x8.NewPin(m.ctrl, m.board, id)
	if err != nil {
		L.RaiseError("%s", err)
		return 0
	}
	if L.GetTop() > 2 {
		initPin(L, p, 3)
	}
	ud := L.NewUserData()
	ud.Value = p
	L.SetMetatable(ud, L.GetTypeMetatable(pinTypeName))
	L.Push(ud)
	return 1
}

// initPin applies the mode, pull and value arguments starting at argument n.
//
// A value is applied before the mode, and a nil mode leaves the direction
// unchanged.
func initPin(L *lua.LState, p *mt76x8.Pin, n int) {
	mode := L.Get(n)
	var options []mt76x8.InitOption
	if pull := L.Get(n + 1); pull != lua.LNil {
		options = append(options, mt76x8.WithPull(mt76x8.Pull(L.CheckInt(n+1))))
	}
	value := L.Get(n + 2)
	if mode == lua.LNil {
		if value != lua.LNil {
			if err := p.SetValue(toLevel(L, n+2)); err != nil {
				L.RaiseError("%s", err)
			}
		}
		return
	}
	if value != lua.LNil {
		options = append(options, mt76x8.WithValue(toLevel(L, n+2)))
	}
	if err := p.Init(mt76x8.Mode(L.CheckInt(n)), options...); err != nil {
		L.RaiseError("%s", err)
	}
}

// toLevel converts argument n to a level.
//
// Numbers are high if non-zero, other values follow Lua truthiness.
func toLevel(L *lua.LState, n int) bool {
	v := L.Get(n)
	if num, ok := v.(lua.LNumber); ok {
		return num != 0
	}
	return lua.LVAsBool(v)
}

func checkPin(L *lua.LState) *mt76x8.Pin {
	ud := L.CheckUserData(1)
	if p, ok := ud.Value.(*mt76x8.Pin); ok {
		return p
	}
	L.ArgError(1, "Pin expected")
	return nil
}

// pinInit implements pin:init(mode [, pull [, value]]).
func pinInit(L *lua.LState) int {
	p := checkPin(L)
	initPin(L, p, 2)
	return 0
}

// pinValue implements pin:value([v]).
//
// With no argument returns the level as 0 or 1, else sets the level.
func pinValue(L *lua.LState) int {
	p := checkPin(L)
	if L.GetTop() > 1 {
		if err := p.SetValue(toLevel(L, 2)); err != nil {
			L.RaiseError("%s", err)
		}
		return 0
	}
	v, err := p.Value()
	if err != nil {
		L.RaiseError("%s", err)
		return 0
	}
	if v {
		L.Push(lua.LNumber(1))
	} else {
		L.Push(lua.LNumber(0))
	}
	return 1
}

func pinOn(L *lua.LState) int {
	if err := checkPin(L).High(); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

func pinOff(L *lua.LState) int {
	if err := checkPin(L).Low(); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

func pinToggle(L *lua.LState) int {
	if err := checkPin(L).Toggle(); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

func pinMode(L *lua.LState) int {
	mode, err := checkPin(L).Mode()
	if err != nil {
		L.RaiseError("%s", err)
		return 0
	}
	L.Push(lua.LNumber(mode))
	return 1
}

func pinID(L *lua.LState) int {
	L.Push(lua.LNumber(checkPin(L).ID()))
	return 1
}

func pinString(L *lua.LState) int {
	L.Push(lua.LString(checkPin(L).String()))
	return 1
}
