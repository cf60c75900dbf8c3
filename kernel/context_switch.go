package kernel

// This file realizes spec's PendSV-driven context switch with
// goroutines standing in for hardware stack frames. The core invariant
// that makes a goroutine-per-task model behave like a single-threaded
// preemptive kernel is:
//
//	at most one task goroutine is ever unparked at a time; every other
//	task goroutine is blocked receiving on its own gate channel, and
//	the driver (whatever called into the kernel from outside a task)
//	is blocked on driverReturn whenever a task is the one running.
//
// Every kernel entry point a task calls (Yield, Sleep, PeriodYield,
// Exit) asks scheduleAndHandoff to dispatch the next task and then
// parks its own goroutine (parkSelf) or ends it (Exit, via
// runtime.Goexit). Every entry point the driver calls (Start, Tick)
// asks scheduleAndHandoff to dispatch and then blocks on driverReturn
// until the resulting chain of task-to-task handoffs bottoms out at
// "no real task is Ready", at which point control returns to the
// driver synchronously.
func (k *Kernel) gateFor(tid TaskID) chan struct{} {
	g, ok := k.gates[tid]
	if !ok {
		g = make(chan struct{})
		k.gates[tid] = g
	}
	return g
}

// scheduleAndHandoff picks the next Ready task under EDF and transfers
// control to it. Callers must hold k.mu on entry; scheduleAndHandoff
// always releases it before returning or blocking.
//
// calledFromTask distinguishes the two kinds of caller: a task's own
// goroutine (Yield/Sleep/PeriodYield/Exit), which must not block here
// since it still has its own unwinding to do (park or Goexit), versus
// the driver (Start/Tick), which blocks here until the cascade settles.
//
// It reports whether the caller was preempted, i.e. whether it must
// now park on its own gate. Round robin can re-select the very task
// that just called in (the sole Ready task yielding to itself); that
// task never actually stops running, so it must not try to hand off
// to - and then wait on - its own gate.
func (k *Kernel) scheduleAndHandoff(calledFromTask bool) bool {
	caller := k.activeTID
	next := k.selectNextLocked()
	k.activeTID = next

	if next == NullTaskID {
		// Nothing real is Ready. By construction (Start and Tick only
		// ever call in here when at least one real task is already
		// Ready), this branch is only reached from a task's own
		// goroutine discovering it has nothing left to hand off to; the
		// driver call several frames up the stack is the one blocked on
		// driverReturn, woken here.
		k.mu.Unlock()
		k.driverReturn <- struct{}{}
		return true
	}

	if calledFromTask && next == caller {
		// Sole Ready task keeps running; nothing to hand off.
		k.tasks[next].State = Running
		k.mu.Unlock()
		return false
	}

	if k.tasks[next].State == Ready {
		k.tasks[next].State = Running
	}
	fresh := k.tasks[next].Fresh
	k.tasks[next].Fresh = false
	entry := k.tasks[next].Entry
	arg := k.tasks[next].Arg
	gate := k.gateFor(next)
	k.mu.Unlock()

	if fresh {
		go k.runTaskBody(next, entry, arg)
	} else {
		gate <- struct{}{}
	}

	if !calledFromTask {
		<-k.driverReturn
	}
	return true
}

// runTaskBody is the goroutine a freshly-created task runs in,
// launched directly by scheduleAndHandoff on a task's first dispatch
// (no gate wait: there is nothing parked to wake yet). Every
// subsequent dispatch of this same task instead sends on its gate,
// resuming it inside whichever parkSelf call it last blocked on.
func (k *Kernel) runTaskBody(tid TaskID, entry TaskFunc, arg interface{}) {
	ctx := &TaskContext{k: k, tid: tid}
	entry(arg, ctx)

	// A task that returns instead of calling ctx.Exit is exited on its
	// behalf, matching spec's "falls off the end" case.
	k.exit(tid)
}

// parkSelf suspends the calling task's goroutine on its own gate after
// the kernel has already picked and dispatched a successor. Must be
// called with k.mu NOT held.
func (k *Kernel) parkSelf(tid TaskID) {
	gate := k.gateFor(tid)
	<-gate
}
