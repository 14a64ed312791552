package target

import "fmt"

// MapMemory is a deterministic in-memory Memory implementation for tests.
// Individual bytes are mapped, so tests can punch single-byte holes to
// exercise region boundaries. It records every PeekData call so tests can
// assert on read counts and sizes.
type MapMemory struct {
	Data map[uint64]byte
	// ReadSizes records the length of every PeekData call in order.
	ReadSizes []int
}

// NewMapMemory creates an empty MapMemory.
func NewMapMemory() *MapMemory {
	return &MapMemory{Data: make(map[uint64]byte)}
}

// SetBytes maps b starting at addr.
func (m *MapMemory) SetBytes(addr uint64, b []byte) {
	for i, v := range b {
		m.Data[addr+uint64(i)] = v
	}
}

// Unmap removes n bytes starting at addr.
func (m *MapMemory) Unmap(addr uint64, n int) {
	for i := 0; i < n; i++ {
		delete(m.Data, addr+uint64(i))
	}
}

// Reads returns the number of PeekData calls made so far.
func (m *MapMemory) Reads() int {
	return len(m.ReadSizes)
}

// PeekData implements Memory. The failure is atomic: the whole range is
// validated before any byte is copied out.
func (m *MapMemory) PeekData(pid int, loadBias uint64, addr uint64, buf []byte) error {
	m.ReadSizes = append(m.ReadSizes, len(buf))
	for i := range buf {
		if _, ok := m.Data[addr+uint64(i)]; !ok {
			return fmt.Errorf("peek %d bytes at %#x: unmapped at %#x", len(buf), addr, addr+uint64(i))
		}
	}
	for i := range buf {
		buf[i] = m.Data[addr+uint64(i)]
	}
	return nil
}

// FailMemory is a Memory implementation whose reads always fail.
type FailMemory struct{}

// PeekData implements Memory.
func (FailMemory) PeekData(pid int, loadBias uint64, addr uint64, buf []byte) error {
	return fmt.Errorf("peek %d bytes at %#x: process gone", len(buf), addr)
}

// PanicMemory panics on any read. Classification paths are verified against
// it: they must never touch target memory.
type PanicMemory struct{}

// PeekData implements Memory.
func (PanicMemory) PeekData(pid int, loadBias uint64, addr uint64, buf []byte) error {
	panic("classification performed a remote read")
}
