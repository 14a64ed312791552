package target

// Memory is the remote-memory adapter: the single boundary through which the
// encoding layer reads a stopped target process.
//
// Implementations can provide:
// - Live process access (ptrace/process_vm_readv)
// - Memory regions captured into a snapshot file
// - Mocked memory for unit tests
//
// The target must stay stopped for the duration of a render call; callers
// rendering from multiple threads must serialize access to the debuggee in
// the adapter, the encoding layer holds no lock.
type Memory interface {
	// PeekData copies len(buf) bytes of target memory starting at addr into
	// buf. addr is a runtime-absolute address; loadBias is the load bias of
	// a position-independent target so offline adapters can translate back
	// to link-time addresses. The copy is best-effort and fails atomically:
	// if any part of the range is unreadable no partial result is signaled.
	PeekData(pid int, loadBias uint64, addr uint64, buf []byte) error
}
