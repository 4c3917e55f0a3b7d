// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mt76x8

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	// DefaultBase is the physical address of the MT76x8 system control
	// block containing the GPIO registers.
	DefaultBase uintptr = 0x10000000

	// DefaultLength is the length of window required to reach all of the
	// GPIO registers.
	//
	// The registers occupy 0x600-0x6ab, so this is a full page rather than
	// the 1024 bytes sometimes quoted for the block.
	DefaultLength uintptr = 0x1000

	// DefaultDevice is the device providing access to physical memory.
	DefaultDevice = "/dev/mem"
)

// Registers provides 32-bit access to a block of hardware registers.
//
// Offsets are byte offsets from the start of the block.
type Registers interface {
	Read32(offset uint32) (uint32, error)
	Write32(offset uint32, value uint32) error
}

// Window is a memory mapped view of a block of physical registers.
//
// The zero value is an unmapped window.
type Window struct {
	// guards the mapping lifetime, not the registers.
	mu sync.RWMutex

	base uintptr

	// the page aligned mapping, as returned by mmap.
	mapping []byte

	// the requested window within the mapping.
	regs []byte

	fd int
}

// Open maps length bytes of physical memory starting at base.
//
// The base need not be page aligned.
//
// The available option is [WithDevice].
//
// Failure to open the device or establish the mapping returns an error
// wrapping ErrHardwareUnavailable.
func Open(base, length uintptr, options ...OpenOption) (*Window, error) {
	cfg := openConfig{device: DefaultDevice}
	for _, o := range options {
		o.applyOpenOption(&cfg)
	}
	if length == 0 {
		return nil, errors.Wrap(ErrHardwareUnavailable, "zero length window")
	}
	if base%4 != 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "base 0x%x not 32-bit aligned", base)
	}
	fd, err := unix.Open(cfg.device, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrHardwareUnavailable, "open %s: %v", cfg.device, err)
	}
	pagesize := uintptr(unix.Getpagesize())
	pageBase := base &^ (pagesize - 1)
	skew := base - pageBase
	mapping, err := unix.Mmap(
		fd,
		int64(pageBase),
		int(skew+length),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(ErrHardwareUnavailable, "mmap %s at 0x%x: %v", cfg.device, base, err)
	}
	return &Window{
		base:    base,
		mapping: mapping,
		regs:    mapping[skew : skew+length],
		fd:      fd,
	}, nil
}

// Base returns the physical address of the start of the window.
func (w *Window) Base() uintptr {
	return w.base
}

// Len returns the length of the window in bytes.
//
// Returns 0 once the window is closed.
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.regs)
}

// Mapped returns true if the window is open.
func (w *Window) Mapped() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.regs != nil
}

// Read32 reads the 32-bit register at the given offset.
func (w *Window) Read32(offset uint32) (uint32, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r, err := w.reg(offset)
	if err != nil {
		return 0, err
	}
	return atomic.LoadUint32(r), nil
}

// Write32 writes the 32-bit register at the given offset.
func (w *Window) Write32(offset uint32, value uint32) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r, err := w.reg(offset)
	if err != nil {
		return err
	}
	atomic.StoreUint32(r, value)
	return nil
}

// Close unmaps the window and releases the device.
//
// Closing a closed window is a no-op.
// Subsequent register accesses return ErrHardwareUnavailable.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mapping == nil {
		return nil
	}
	err := unix.Munmap(w.mapping)
	if cerr := unix.Close(w.fd); err == nil {
		err = cerr
	}
	w.mapping = nil
	w.regs = nil
	return errors.Wrap(err, "close window")
}

// reg returns a pointer to the register at offset.
//
// Must be called with mu held.
func (w *Window) reg(offset uint32) (*uint32, error) {
	if w.regs == nil {
		return nil, errors.Wrapf(ErrHardwareUnavailable, "access to 0x%03x", offset)
	}
	if err := checkOffset(offset, len(w.regs)); err != nil {
		return nil, err
	}
	return (*uint32)(unsafe.Pointer(&w.regs[offset])), nil
}

// checkOffset confirms that a 32-bit register at offset is aligned and lies
// within a block of length bytes.
func checkOffset(offset uint32, length int) error {
	if uint64(offset)+4 > uint64(length) {
		return errors.Wrapf(ErrOutOfRange, "offset 0x%03x beyond window length 0x%x", offset, length)
	}
	if offset%4 != 0 {
		return errors.Wrapf(ErrOutOfRange, "offset 0x%03x not 32-bit aligned", offset)
	}
	return nil
}
