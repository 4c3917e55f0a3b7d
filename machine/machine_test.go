// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package machine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-mt76x8"
	"github.com/warthog618/go-mt76x8/machine"
	lua "github.com/yuin/gopher-lua"
)

func newState(t *testing.T, s *mt76x8.Sim) *lua.LState {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)
	machine.Preload(L, mt76x8.NewController(s), mt76x8.ReferenceBoard())
	return L
}

func checkLevel(t *testing.T, s *mt76x8.Sim, id, xv int) {
	t.Helper()
	v, err := s.Level(id)
	assert.Nil(t, err)
	assert.Equal(t, xv, v)
}

func checkOutput(t *testing.T, s *mt76x8.Sim, id int, xv bool) {
	t.Helper()
	out, err := mt76x8.NewController(s).Direction(id)
	assert.Nil(t, err)
	assert.Equal(t, xv, out)
}

func TestConstants(t *testing.T) {
	L := newState(t, mt76x8.NewSim())
	err := L.DoString(`
		local machine = require("machine")
		IN, OUT = machine.Pin.IN, machine.Pin.OUT
		UP, DOWN = machine.Pin.PULL_UP, machine.Pin.PULL_DOWN
		BOARD = machine.board
	`)
	require.Nil(t, err)
	assert.Equal(t, lua.LNumber(0), L.GetGlobal("IN"))
	assert.Equal(t, lua.LNumber(1), L.GetGlobal("OUT"))
	assert.Equal(t, lua.LNumber(1), L.GetGlobal("UP"))
	assert.Equal(t, lua.LNumber(2), L.GetGlobal("DOWN"))
	assert.Equal(t, lua.LString("reference"), L.GetGlobal("BOARD"))
}

func TestPinConstructor(t *testing.T) {
	s := mt76x8.NewSim()
	L := newState(t, s)
	err := L.DoString(`
		local machine = require("machine")
		local p = machine.Pin(0, machine.Pin.OUT, nil, 1)
		NAME = tostring(p)
		ID = p:id()
	`)
	require.Nil(t, err)
	assert.Equal(t, lua.LString("Pin(0)"), L.GetGlobal("NAME"))
	assert.Equal(t, lua.LNumber(0), L.GetGlobal("ID"))
	checkLevel(t, s, 0, mt76x8.LevelActive)
	checkOutput(t, s, 0, true)

	// value is written before the direction
	assert.Equal(t, []mt76x8.Write{
		{Offset: 0x630, Value: 1},
		{Offset: 0x600, Value: 1},
	}, s.Writes())
}

func TestPinConstructorOnly(t *testing.T) {
	s := mt76x8.NewSim()
	L := newState(t, s)
	err := L.DoString(`
		local machine = require("machine")
		local p = machine.Pin(14)
	`)
	require.Nil(t, err)
	assert.Empty(t, s.Writes())
}

func TestPinInvalid(t *testing.T) {
	patterns := []struct {
		name   string
		script string
		errStr string
	}{
		{"not on board", `require("machine").Pin(1)`, "invalid pin"},
		{"beyond banks", `require("machine").Pin(96)`, "unsupported pin"},
		{"bad mode", `require("machine").Pin(15, 7)`, "invalid mode"},
		{"no id", `require("machine").Pin()`, "number expected"},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			s := mt76x8.NewSim()
			L := newState(t, s)
			err := L.DoString(p.script)
			require.NotNil(t, err)
			assert.Contains(t, err.Error(), p.errStr)
			assert.Empty(t, s.Writes())
		}
		t.Run(p.name, tf)
	}
}

func TestPinInit(t *testing.T) {
	s := mt76x8.NewSim(mt76x8.WithLevel(14, mt76x8.LevelActive))
	L := newState(t, s)
	err := L.DoString(`
		local machine = require("machine")
		local p = machine.Pin(14)
		p:init(machine.Pin.IN, machine.Pin.PULL_UP)
		V = p:value()
		M = p:mode()
		local q = machine.Pin(40)
		q:init(machine.Pin.OUT, nil, false)
		QM = q:mode()
	`)
	require.Nil(t, err)
	assert.Equal(t, lua.LNumber(1), L.GetGlobal("V"))
	assert.Equal(t, lua.LNumber(0), L.GetGlobal("M"))
	assert.Equal(t, lua.LNumber(1), L.GetGlobal("QM"))
	checkOutput(t, s, 14, false)
	checkOutput(t, s, 40, true)
	checkLevel(t, s, 40, mt76x8.LevelInactive)
}

func TestPinInitValueOnly(t *testing.T) {
	s := mt76x8.NewSim()
	L := newState(t, s)
	err := L.DoString(`
		local machine = require("machine")
		machine.Pin(41):init(nil, nil, 1)
	`)
	require.Nil(t, err)
	// the latch is set, but the direction is unchanged
	assert.Equal(t, []mt76x8.Write{{Offset: 0x634, Value: 1 << 9}}, s.Writes())
	checkOutput(t, s, 41, false)
}

func TestPinValue(t *testing.T) {
	s := mt76x8.NewSim()
	L := newState(t, s)
	err := L.DoString(`
		local machine = require("machine")
		local p = machine.Pin(42, machine.Pin.OUT)
		p:value(1)
		A = p:value()
		p:value(0)
		B = p:value()
		p:value(true)
		C = p:value()
		p:off()
		D = p:value()
		p:on()
		E = p:value()
		p:toggle()
		F = p:value()
	`)
	require.Nil(t, err)
	for g, xv := range map[string]int{"A": 1, "B": 0, "C": 1, "D": 0, "E": 1, "F": 0} {
		assert.Equal(t, lua.LNumber(xv), L.GetGlobal(g), g)
	}
	checkLevel(t, s, 42, mt76x8.LevelInactive)
}

func TestPinClosed(t *testing.T) {
	s := mt76x8.NewSim()
	L := newState(t, s)
	err := L.DoString(`P = require("machine").Pin(0)`)
	require.Nil(t, err)
	s.Close()
	err = L.DoString(`P:value(1)`)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "hardware unavailable")
}
