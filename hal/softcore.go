package hal

import (
	"sync"

	"github.com/talhaamir12/rtx/kernel"
)

// Softcore is the goroutine-backed Intrinsics implementation: there is
// no real stack pointer to save, so SavePSP/LoadPSP just record the
// value a board port's linker-relative accounting would compute,
// letting tests and trace tooling assert on it independently of
// kernel's own internal handoff bookkeeping.
type Softcore struct {
	mu   sync.Mutex
	psp  map[kernel.TaskID]uintptr
	pend int
}

// NewSoftcore constructs an empty Softcore.
func NewSoftcore() *Softcore {
	return &Softcore{psp: make(map[kernel.TaskID]uintptr)}
}

func (s *Softcore) SavePSP(tid kernel.TaskID, sp uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.psp[tid] = sp
}

func (s *Softcore) LoadPSP(tid kernel.TaskID) uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.psp[tid]
}

// PendSwitch records that a context switch was requested; a board port
// would set PendSV's pending bit here. Softcore only counts requests,
// since the actual switch happens synchronously inside kernel's own
// scheduleAndHandoff rather than through a deferred exception tail-chain.
func (s *Softcore) PendSwitch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pend++
}

// PendCount reports how many times PendSwitch has fired, for tests.
func (s *Softcore) PendCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pend
}

// DecodeSVCImmediate reads the immediate a trap handler would have
// disassembled out of the faulting SVC instruction; Softcore reads it
// from frame.SVCImmediate instead (see kernel.ExceptionFrame).
func (s *Softcore) DecodeSVCImmediate(frame *kernel.ExceptionFrame) uint8 {
	if frame == nil {
		return 0
	}
	return frame.SVCImmediate
}

// DisableIRQ and MaskTick have nothing to mask in software; they exist
// so callers can bracket a critical section the same way a board port
// would. The returned restore funcs do nothing, and no nesting count
// is kept.
func (s *Softcore) DisableIRQ() (restore func()) {
	return func() {}
}

func (s *Softcore) MaskTick() (restore func()) {
	return func() {}
}
