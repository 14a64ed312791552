//go:build linux

package target

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// PtraceMemory reads a live, ptrace-stopped process. It uses
// process_vm_readv for bulk copies and falls back to PTRACE_PEEKDATA when
// cross-memory attach is unavailable (seccomp, old kernels, Yama).
type PtraceMemory struct {
	log *zap.Logger
}

// NewPtraceMemory creates a live-process adapter. log may be nil.
func NewPtraceMemory(log *zap.Logger) *PtraceMemory {
	if log == nil {
		log = zap.NewNop()
	}
	return &PtraceMemory{log: log}
}

// PeekData implements Memory. loadBias is unused: a live target is addressed
// with runtime-absolute addresses only.
func (m *PtraceMemory) PeekData(pid int, loadBias uint64, addr uint64, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(len(buf))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}

	n, err := unix.ProcessVMReadv(pid, local, remote, 0)
	switch err {
	case nil:
		if n == len(buf) {
			return nil
		}
		// Partial copy means the tail of the range is unmapped.
		return fmt.Errorf("peek %d bytes at %#x: short read (%d)", len(buf), addr, n)
	case unix.ENOSYS, unix.EPERM:
		m.log.Debug("process_vm_readv unavailable, falling back to ptrace",
			zap.Int("pid", pid),
			zap.Error(err))
		return m.peekPtrace(pid, addr, buf)
	default:
		m.log.Debug("process_vm_readv failed",
			zap.Int("pid", pid),
			zap.Uint64("addr", addr),
			zap.Error(err))
		return fmt.Errorf("peek %d bytes at %#x: %v", len(buf), addr, err)
	}
}

// peekPtrace reads through PTRACE_PEEKDATA, which the kernel services one
// word at a time. Requires that the caller is the tracer of pid.
func (m *PtraceMemory) peekPtrace(pid int, addr uint64, buf []byte) error {
	n, err := unix.PtracePeekData(pid, uintptr(addr), buf)
	if err != nil {
		return fmt.Errorf("ptrace peek %d bytes at %#x: %v", len(buf), addr, err)
	}
	if n != len(buf) {
		return fmt.Errorf("ptrace peek at %#x: short read (%d of %d)", addr, n, len(buf))
	}
	return nil
}
