package kernel

import "github.com/talhaamir12/rtx/kernel/mem"

// TaskContext is the only handle a TaskFunc gets onto the kernel; every
// method is an SVC-gated operation performed on behalf of the task
// that owns this ctx (spec §4's "only the SVC gate may touch kernel
// state directly").
type TaskContext struct {
	k   *Kernel
	tid TaskID
}

// TID is the calling task's own identifier. This is the one accessor
// that does not round-trip through Dispatch: the task already knows
// its own tid (it is baked into this ctx at dispatch time), so asking
// the kernel to look up SVC #15's "current identifier" would be
// answering a question this value already carries.
func (c *TaskContext) TID() TaskID { return c.tid }

// Yield is SVC #1's task-facing form: gives up the rest of the current
// deadline window.
func (c *TaskContext) Yield() {
	c.k.Dispatch(SVCRequest{Num: SVCYield, Caller: c.tid})
}

// PeriodYield is SVC #11's task-facing form: sleeps out the remainder
// of the task's current period so the driver's Tick loop re-arms it
// at the next period boundary.
func (c *TaskContext) PeriodYield() {
	c.k.Dispatch(SVCRequest{Num: SVCPeriodYield, Caller: c.tid})
}

// Sleep is SVC #6's task-facing form: parks the task for ms ticks.
func (c *TaskContext) Sleep(ms int32) {
	c.k.Dispatch(SVCRequest{Num: SVCSleep, Caller: c.tid, SleepMS: ms})
}

// Exit is SVC #17's task-facing form. It does not return: callers
// should treat it the same as a panic or os.Exit for control-flow
// purposes (the underlying doExit ends this goroutine via
// runtime.Goexit, so Dispatch itself never gets to produce a result).
func (c *TaskContext) Exit() {
	c.k.Dispatch(SVCRequest{Num: SVCTaskExit, Caller: c.tid})
}

// Alloc is SVC #8's task-facing form for task-owned heap memory
// (distinct from the stack the kernel allocates on the task's behalf
// at creation).
func (c *TaskContext) Alloc(n uint32) (mem.Addr, error) {
	res := c.k.Dispatch(SVCRequest{Num: SVCMemAlloc, Caller: c.tid, Size: n})
	return res.Ptr, res.Error
}

// Dealloc is SVC #9's task-facing form: only the owning task may free
// its own allocations through this path (compare (*Kernel) exit's
// privileged reclaim of the stack itself).
func (c *TaskContext) Dealloc(p mem.Addr) error {
	res := c.k.Dispatch(SVCRequest{Num: SVCMemDealloc, Caller: c.tid, Ptr: p})
	return res.Error
}

// SetDeadline is SVC #4's task-facing form (a task may also change
// another task's deadline by TID; spec does not restrict this to
// self).
func (c *TaskContext) SetDeadline(tid TaskID, deadline int32) error {
	res := c.k.Dispatch(SVCRequest{Num: SVCSetDeadline, TargetTID: tid, Deadline: deadline})
	return res.Error
}

// Info is SVC #5's task-facing form.
func (c *TaskContext) Info(tid TaskID) (TCB, error) {
	res := c.k.Dispatch(SVCRequest{Num: SVCTaskInfo, TargetTID: tid})
	return res.Info, res.Error
}

// Create is SVC #2's task-facing form: tasks may spawn other tasks.
func (c *TaskContext) Create(spec TaskSpec) (TaskID, error) {
	res := c.k.Dispatch(SVCRequest{Num: SVCTaskCreate, TaskSpec: spec})
	return res.TID, res.Error
}

// CreateWithDeadline is SVC #3's task-facing form.
func (c *TaskContext) CreateWithDeadline(spec TaskSpec, deadline int32) (TaskID, error) {
	res := c.k.Dispatch(SVCRequest{Num: SVCTaskCreateDeadline, TaskSpec: spec, Deadline: deadline})
	return res.TID, res.Error
}

// CountExtFrag is the task-facing form of SVC #10.
func (c *TaskContext) CountExtFrag(n uint32) int {
	res := c.k.Dispatch(SVCRequest{Num: SVCCountExtFrag, Size: n})
	return res.Count
}
