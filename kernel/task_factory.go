package kernel

import (
	"github.com/pkg/errors"

	"github.com/talhaamir12/rtx/kernel/mem"
)

// CreateTask is SVC #2's impl: creates a task with the default
// deadline (spec §4.2).
func (k *Kernel) CreateTask(spec TaskSpec) (TaskID, error) {
	return k.createTaskImpl(spec, DefaultDeadline, false)
}

// CreateTaskWithDeadline is SVC #3's impl.
func (k *Kernel) CreateTaskWithDeadline(spec TaskSpec, deadline int32) (TaskID, error) {
	if deadline <= 0 {
		return NullTaskID, errors.Wrap(ErrInvalidArgument, "create task")
	}
	return k.createTaskImpl(spec, deadline, true)
}

func (k *Kernel) createTaskImpl(spec TaskSpec, deadline int32, periodic bool) (TaskID, error) {
	if spec.Entry == nil {
		return NullTaskID, errors.Wrap(ErrInvalidArgument, "create task: nil entry")
	}
	stackSize := spec.StackSize
	if stackSize < MinimumStack {
		stackSize = MinimumStack
	}
	// Payloads start 8-byte aligned, so a size that is a multiple of 8
	// keeps StackHigh 8-byte aligned too.
	if rem := stackSize % 8; rem != 0 {
		stackSize += 8 - rem
	}

	k.mu.Lock()
	if !k.initialized {
		k.mu.Unlock()
		return NullTaskID, errors.Wrap(ErrKernelState, "create task")
	}

	tid := k.findDormantSlotLocked()
	if tid == NullTaskID {
		k.mu.Unlock()
		return NullTaskID, errors.Wrap(ErrResourceExhausted, "create task: task table full")
	}
	k.mu.Unlock()

	// Heap allocation happens outside the kernel lock: the allocator has
	// its own mutex and spec does not require task-table and heap state
	// to change atomically together.
	base, err := k.heap.Alloc(stackSize, mem.NullOwner)
	if err != nil {
		return NullTaskID, errors.Wrapf(ErrResourceExhausted, "create task: stack alloc: %v", err)
	}
	if err := k.heap.Reown(base, mem.Owner(tid)); err != nil {
		return NullTaskID, errors.Wrap(err, "create task: reown stack")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	// The slot may have been claimed by a racing create between the
	// unlock above and this re-lock; re-verify before committing.
	if k.tasks[tid].State != Dormant {
		k.heap.Dealloc(base, mem.NullOwner, true)
		return NullTaskID, errors.Wrap(ErrResourceExhausted, "create task: slot raced")
	}

	t := k.tasks[tid]
	t.Entry = spec.Entry
	t.Arg = spec.Arg
	t.StackBase = base
	t.StackHigh = base + mem.Addr(stackSize)
	t.StackSaved = t.StackHigh
	t.StackSize = stackSize
	t.State = Ready
	t.Fresh = true
	t.Deadline = deadline
	t.TimeLeft = deadline
	t.SleepLeft = 0
	t.IsPeriodic = periodic
	// The primed frame exists for spec-layout fidelity (§4.6) only: this
	// port resumes a task by releasing its parked goroutine, not by
	// restoring these words onto a machine stack, so PC/LR are not real
	// addresses.
	t.Frame = NewExceptionFrame(0, 0)

	k.numTasks++

	spec.TID = tid
	spec.StackHigh = t.StackHigh
	return tid, nil
}

// SetDeadline is SVC #4's impl: spec requires the new deadline be
// observed immediately, including by a scheduling decision already in
// flight, so TimeLeft is reset alongside Deadline rather than left to
// age out on the next natural yield.
func (k *Kernel) SetDeadline(tid TaskID, deadline int32) error {
	if deadline <= 0 {
		return errors.Wrap(ErrInvalidArgument, "set deadline")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if tid >= MaxTasks || k.tasks[tid].State == Dormant {
		return errors.Wrap(ErrInvalidArgument, "set deadline: no such task")
	}

	t := k.tasks[tid]
	t.Deadline = deadline
	t.TimeLeft = deadline
	return nil
}
