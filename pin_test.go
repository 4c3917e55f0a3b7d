// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-mt76x8"
)

func newPin(t *testing.T, s *mt76x8.Sim, id int) *mt76x8.Pin {
	t.Helper()
	p, err := mt76x8.NewPin(mt76x8.NewController(s), mt76x8.ReferenceBoard(), id)
	require.Nil(t, err)
	require.NotNil(t, p)
	return p
}

func checkSimLevel(t *testing.T, s *mt76x8.Sim, id, xv int) {
	t.Helper()
	v, err := s.Level(id)
	assert.Nil(t, err)
	assert.Equal(t, xv, v)
}

func TestNewPin(t *testing.T) {
	c := mt76x8.NewController(mt76x8.NewSim())
	board := mt76x8.ReferenceBoard()

	p, err := mt76x8.NewPin(c, board, 14)
	require.Nil(t, err)
	assert.Equal(t, 14, p.ID())
	assert.Equal(t, "Pin(14)", p.String())

	// not on board
	p, err = mt76x8.NewPin(c, board, 1)
	assert.True(t, errors.Is(err, mt76x8.ErrInvalidPin))
	assert.Nil(t, p)

	// beyond the banks
	for _, id := range []int{96, 255, -1} {
		p, err = mt76x8.NewPin(c, board, id)
		assert.True(t, errors.Is(err, mt76x8.ErrUnsupportedPin), id)
		assert.Nil(t, p)
	}
}

func TestInitOutputHigh(t *testing.T) {
	s := mt76x8.NewSim()
	p := newPin(t, s, 0)

	err := p.Init(mt76x8.Out, mt76x8.WithValue(true))
	require.Nil(t, err)
	data, _ := s.Read32(mt76x8.Banks[0].Data)
	assert.Equal(t, uint32(1), data&1)
	checkDirBit(t, s, 0, true)
	checkSimLevel(t, s, 0, mt76x8.LevelActive)
	m, err := p.Mode()
	assert.Nil(t, err)
	assert.Equal(t, mt76x8.Out, m)
}

func TestInitInput(t *testing.T) {
	s := mt76x8.NewSim(mt76x8.WithLevel(14, mt76x8.LevelActive))
	p := newPin(t, s, 14)
	require.Nil(t, s.Write32(mt76x8.Banks[0].Dir, 1<<14))

	err := p.Init(mt76x8.In)
	require.Nil(t, err)
	checkDirBit(t, s, 14, false)
	v, err := p.Value()
	assert.Nil(t, err)
	assert.True(t, v)

	require.Nil(t, s.Pulldown(14))
	v, err = p.Value()
	assert.Nil(t, err)
	assert.False(t, v)

	m, err := p.Mode()
	assert.Nil(t, err)
	assert.Equal(t, mt76x8.In, m)
}

func TestInitOutputLow(t *testing.T) {
	s := mt76x8.NewSim()
	p := newPin(t, s, 40)
	require.Nil(t, s.Write32(mt76x8.Banks[1].Data, 0xffffffff))
	s.ClearWrites()

	err := p.Init(mt76x8.Out, mt76x8.WithValue(false))
	require.Nil(t, err)

	// value is latched before the pin becomes an output
	assert.Equal(t, []mt76x8.Write{
		{Offset: 0x644, Value: 1 << 8},
		{Offset: 0x604, Value: 1 << 8},
	}, s.Writes())
	checkDirBit(t, s, 40, true)
	checkSimLevel(t, s, 40, mt76x8.LevelInactive)
	// neighbours untouched
	checkSimLevel(t, s, 39, mt76x8.LevelActive)
	checkSimLevel(t, s, 41, mt76x8.LevelActive)
}

func TestInitWithoutValue(t *testing.T) {
	s := mt76x8.NewSim()
	p := newPin(t, s, 15)

	err := p.Init(mt76x8.Out)
	require.Nil(t, err)
	assert.Equal(t, []mt76x8.Write{{Offset: 0x600, Value: 1 << 15}}, s.Writes())
}

func TestInitPullIgnored(t *testing.T) {
	s := mt76x8.NewSim()
	p := newPin(t, s, 16)
	err := p.Init(mt76x8.Out, mt76x8.WithPull(mt76x8.PullUp), mt76x8.WithValue(true))
	require.Nil(t, err)
	withPull := s.Writes()

	s = mt76x8.NewSim()
	p = newPin(t, s, 16)
	err = p.Init(mt76x8.Out, mt76x8.WithValue(true))
	require.Nil(t, err)
	assert.Equal(t, s.Writes(), withPull)
}

func TestInitInvalidMode(t *testing.T) {
	s := mt76x8.NewSim()
	p := newPin(t, s, 17)

	err := p.Init(mt76x8.Mode(2), mt76x8.WithValue(true))
	assert.True(t, errors.Is(err, mt76x8.ErrInvalidMode))
	assert.Empty(t, s.Writes())
	assert.Equal(t, "mode(2)", mt76x8.Mode(2).String())
}

func TestInitClosed(t *testing.T) {
	s := mt76x8.NewSim()
	p := newPin(t, s, 0)
	s.Close()

	err := p.Init(mt76x8.Out, mt76x8.WithValue(true))
	assert.True(t, errors.Is(err, mt76x8.ErrHardwareUnavailable))
	_, err = p.Value()
	assert.True(t, errors.Is(err, mt76x8.ErrHardwareUnavailable))
	_, err = p.Mode()
	assert.True(t, errors.Is(err, mt76x8.ErrHardwareUnavailable))
}

func TestPinLevels(t *testing.T) {
	s := mt76x8.NewSim()
	p := newPin(t, s, 41)
	require.Nil(t, p.Init(mt76x8.Out))

	assert.Nil(t, p.High())
	checkSimLevel(t, s, 41, mt76x8.LevelActive)
	assert.Nil(t, p.Low())
	checkSimLevel(t, s, 41, mt76x8.LevelInactive)
	assert.Nil(t, p.SetValue(true))
	checkSimLevel(t, s, 41, mt76x8.LevelActive)
	assert.Nil(t, p.Toggle())
	checkSimLevel(t, s, 41, mt76x8.LevelInactive)
	assert.Nil(t, p.Toggle())
	checkSimLevel(t, s, 41, mt76x8.LevelActive)
}
