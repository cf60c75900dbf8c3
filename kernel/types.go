// Package kernel implements the EDF task scheduler, the SVC gate, and
// the context-switch bookkeeping described by the RTX design. There is
// no MCU underneath this port: the hardware-tied pieces (PSP load/store,
// PendSV, SVC trap decode) live behind the hal.Intrinsics interface, and
// this package's softcore handoff (see context_switch.go) realizes them
// with goroutines standing in for hardware-driven stack unstacking.
package kernel

import "github.com/talhaamir12/rtx/kernel/mem"

// TaskID is a task table slot index, not a monotonic handle: a freed
// slot is reused by the next create.
type TaskID uint32

// NullTaskID is the idle task's reserved slot.
const NullTaskID TaskID = 0

// ABI constants (spec §6).
const (
	MaxTasks      = 16
	MinimumStack  = 1024
	DefaultDeadline int32 = 5
	// InfiniteDeadline stands in for the Null Task's 0xFFFFFFFF deadline.
	InfiniteDeadline int32 = 1<<31 - 1
)

// State is a task's lifecycle state.
type State uint8

const (
	Dormant State = iota
	Ready
	Running
	Sleeping
)

func (s State) String() string {
	switch s {
	case Dormant:
		return "Dormant"
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Sleeping:
		return "Sleeping"
	default:
		return "Unknown"
	}
}

// TaskFunc is a task's entry point. arg is the opaque argument pointer
// passed at creation; ctx is the task's handle onto the privileged API
// (spec's SVC-gated wrappers: Yield, Sleep, PeriodYield, Exit, Alloc,
// Dealloc, ...). A task that falls off the end of TaskFunc without
// calling ctx.Exit is exited on its behalf.
type TaskFunc func(arg interface{}, ctx *TaskContext)

// ExceptionFrame is the software-constructed initial stack frame spec
// §4.6 describes: 16 words, full-descending, offset 0 pushed last.
// This is kept as plain data for fidelity/assertions — there is no
// machine stack to unwind in this port; the task's Go call stack is the
// real resume point, parked on its gate channel (see context_switch.go).
type ExceptionFrame struct {
	// XPSR has the thumb bit (bit 24) set, matching real Cortex-M EXC_RETURN.
	XPSR uint32
	PC   uintptr // task entry
	LR   uintptr // task-exit trampoline
	// R12, R3, R2, R1, R0, then R11..R4 (13 scratch words).
	Scratch [13]uint32

	// SVCImmediate stands in for the byte a real SVC trap handler would
	// read back out of the faulting instruction at PC-2; this port has
	// no instruction stream to read. Nothing in kernel reads or writes
	// this field: Dispatch selects the operation from SVCRequest.Num.
	// hal.Softcore.DecodeSVCImmediate returns whatever value is stored
	// here.
	SVCImmediate uint8
}

// ThumbBit is bit 24 of xPSR, required set in every primed frame.
const ThumbBit = 1 << 24

// ScratchSentinel fills every general-purpose register slot of a fresh
// frame, matching spec's 0xAAAAAAAA.
const ScratchSentinel = 0xAAAAAAAA

// NewExceptionFrame primes a fresh frame for entry, to be resumed via
// exitTrampoline (recorded only for layout fidelity; in-process Go
// never actually branches to it, ctx.Exit plays that role instead).
func NewExceptionFrame(entry uintptr, exitTrampoline uintptr) *ExceptionFrame {
	f := &ExceptionFrame{
		XPSR: ThumbBit,
		PC:   entry,
		LR:   exitTrampoline,
	}
	for i := range f.Scratch {
		f.Scratch[i] = ScratchSentinel
	}
	return f
}

// TCB is the task control block (spec §3).
type TCB struct {
	Entry      TaskFunc
	Arg        interface{}
	StackBase  mem.Addr // ownership handle returned by the allocator
	StackHigh  mem.Addr // stack_base + stack_size, 8-byte aligned
	StackSaved mem.Addr // bookkeeping only; see context_switch.go
	StackSize  uint32
	TID        TaskID
	State      State
	Fresh      bool
	Deadline   int32
	TimeLeft   int32
	SleepLeft  int32
	IsPeriodic bool

	// Frame holds the exception frame primed when the task was created;
	// it is nil for a Dormant slot.
	Frame *ExceptionFrame
}

// TaskSpec is what a caller hands to CreateTask / CreateTaskWithDeadline;
// it mirrors a caller-owned TCB in spec.md, pared to the fields a
// caller actually supplies (the kernel fills in the rest).
type TaskSpec struct {
	Entry     TaskFunc
	Arg       interface{}
	StackSize uint32

	// Not read by the kernel. CreateTask and CreateTaskWithDeadline take
	// the spec by value, so these fields are not written back to the
	// caller's TaskSpec; the assigned identifier is the returned TaskID
	// and the stack high is reported by TaskInfo.
	TID       TaskID
	StackHigh mem.Addr
}
