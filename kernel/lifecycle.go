package kernel

import (
	"runtime"

	"github.com/talhaamir12/rtx/kernel/mem"
)

// yield is SVC #1's impl: the calling task gives up the remainder of
// its current deadline window and re-enters Ready, then parks until it
// is dispatched again. A non-periodic task gets a fresh TimeLeft; a
// periodic task keeps its TimeLeft, which is refilled only at its
// period boundary (periodYield, or Tick waking it).
func (k *Kernel) yield(tid TaskID) {
	k.mu.Lock()
	t := k.tasks[tid]
	if !t.IsPeriodic {
		t.TimeLeft = t.Deadline
	}
	t.State = Ready
	if k.scheduleAndHandoff(true) {
		k.parkSelf(tid)
	}
}

// periodYield is SVC #11's impl (spec §4.8). A periodic task (one
// created through CreateTaskWithDeadline) sleeps for whatever remains
// of its current period, so it is woken again exactly on the next
// period boundary by Tick's sleep-queue pass; if the remaining time
// has already run out it refills TimeLeft and stays Ready instead of
// sleeping a full period late. A non-periodic task has no period to
// rejoin, so it always sleeps out its full deadline.
func (k *Kernel) periodYield(tid TaskID) {
	k.mu.Lock()
	t := k.tasks[tid]

	if !t.IsPeriodic {
		k.sleepLocked(tid, t.Deadline)
		return
	}

	if t.TimeLeft <= 0 {
		t.TimeLeft = t.Deadline
		t.State = Ready
		if k.scheduleAndHandoff(true) {
			k.parkSelf(tid)
		}
		return
	}

	k.sleepLocked(tid, t.TimeLeft)
}

// sleep is SVC #6's impl: parks the task for ms ticks. ms <= 0 is a
// no-op, matching spec's "sleep(0) returns immediately without
// yielding the processor".
func (k *Kernel) sleep(tid TaskID, ms int32) {
	k.mu.Lock()
	if ms <= 0 {
		k.mu.Unlock()
		return
	}
	k.sleepLocked(tid, ms)
}

// sleepLocked does the Sleeping-state handoff common to sleep and
// periodYield. Callers must hold k.mu on entry; it is released before
// returning or blocking, same contract as scheduleAndHandoff.
func (k *Kernel) sleepLocked(tid TaskID, ms int32) {
	t := k.tasks[tid]
	t.State = Sleeping
	t.SleepLeft = ms
	k.scheduleAndHandoff(true)
	k.parkSelf(tid)
}

// exit is SVC #17's impl, also invoked on a task's behalf when its
// TaskFunc returns without calling ctx.Exit. It reclaims the task's
// stack (scenario: stack recycling on exit) and never returns to the
// caller when invoked from ctx.Exit; see (*TaskContext).Exit.
func (k *Kernel) exit(tid TaskID) {
	k.mu.Lock()
	t := k.tasks[tid]

	if t.StackBase != mem.NilAddr {
		k.heap.Dealloc(t.StackBase, mem.Owner(tid), true)
	}

	t.State = Dormant
	t.Entry = nil
	t.Arg = nil
	t.Frame = nil
	t.Fresh = false
	t.IsPeriodic = false
	t.StackBase = mem.NilAddr
	t.StackHigh = mem.NilAddr
	t.StackSaved = mem.NilAddr
	t.StackSize = 0
	t.Deadline = DefaultDeadline
	t.TimeLeft = 0
	t.SleepLeft = 0

	k.numTasks--
	delete(k.gates, tid)

	k.scheduleAndHandoff(true)
}

// Yield, Sleep, PeriodYield, Exit are the task-facing entry points;
// TaskContext wraps them so a TaskFunc only ever reaches the kernel
// through its own ctx, never through the Kernel value directly.

func (k *Kernel) doExit(tid TaskID) {
	k.exit(tid)
	// exit() has already handed control to a successor; this goroutine
	// must never execute another instruction of the exited task's body.
	runtime.Goexit()
}
