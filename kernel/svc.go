package kernel

import "github.com/talhaamir12/rtx/kernel/mem"

// SVC numbers the hardware port's SVC gate would decode out of the
// faulting instruction's immediate (spec §4.7). In this port there is
// no trapped instruction: callers put the number in SVCRequest.Num and
// Dispatch below switches on it, the closest analogue to the
// original's single-entry-point svc_handler switch.
const (
	SVCKernelStart        = 0
	SVCYield              = 1
	SVCTaskCreate         = 2
	SVCTaskCreateDeadline = 3
	SVCSetDeadline        = 4
	SVCTaskInfo           = 5
	// SVCSleep and SVCPeriodYield occupy spec's reserved gap numbers:
	// the ABI table (spec §4.7) enumerates every number it assigns and
	// states gaps are reserved, but sleep/period-yield are listed only
	// in the API-surface prose, not in the numbered table itself.
	SVCSleep        = 6
	SVCMemInit      = 7
	SVCMemAlloc     = 8
	SVCMemDealloc   = 9
	SVCCountExtFrag = 10
	SVCPeriodYield  = 11
	SVCGetCurrentID = 15
	SVCTaskExit     = 17
	SVCKernelInit   = 18
)

// SVCRequest is one call's decoded register file: Num selects the
// operation, the remaining fields stand in for R0-R3 as each
// operation needs them.
type SVCRequest struct {
	Num       int
	Caller    TaskID
	TaskSpec  TaskSpec
	Deadline  int32
	TargetTID TaskID
	SleepMS   int32
	Size      uint32
	Ptr       mem.Addr
}

// SVCResult is the decoded return register(s).
type SVCResult struct {
	Code  Code
	TID   TaskID
	Ptr   mem.Addr
	Count int
	Info  TCB
	Error error
}

// Dispatch routes one SVC request to its kernel implementation, the
// same fan-out the hardware port's trap handler would do by reading
// the immediate out of the faulting SVC instruction. It is the single
// authorized entry point spec §4.7 describes: TaskContext's methods
// (the task-facing API) and the driver (cmd/rtxsim) both go through
// here rather than calling the unexported kernel routines directly.
func (k *Kernel) Dispatch(req SVCRequest) SVCResult {
	switch req.Num {
	case SVCKernelInit:
		err := k.Init()
		return SVCResult{Code: CodeFromError(err), Error: err}

	case SVCMemInit:
		err := k.HeapInit()
		return SVCResult{Code: CodeFromError(err), Error: err}

	case SVCKernelStart:
		err := k.Start()
		return SVCResult{Code: CodeFromError(err), Error: err}

	case SVCTaskCreate:
		tid, err := k.CreateTask(req.TaskSpec)
		return SVCResult{Code: CodeFromError(err), TID: tid, Error: err}

	case SVCTaskCreateDeadline:
		tid, err := k.CreateTaskWithDeadline(req.TaskSpec, req.Deadline)
		return SVCResult{Code: CodeFromError(err), TID: tid, Error: err}

	case SVCSetDeadline:
		err := k.SetDeadline(req.TargetTID, req.Deadline)
		return SVCResult{Code: CodeFromError(err), Error: err}

	case SVCTaskInfo:
		info, err := k.TaskInfo(req.TargetTID)
		return SVCResult{Code: CodeFromError(err), Info: info, Error: err}

	case SVCYield:
		k.yield(req.Caller)
		return SVCResult{Code: OK}

	case SVCPeriodYield:
		k.periodYield(req.Caller)
		return SVCResult{Code: OK}

	case SVCSleep:
		k.sleep(req.Caller, req.SleepMS)
		return SVCResult{Code: OK}

	case SVCTaskExit:
		k.doExit(req.Caller)
		return SVCResult{Code: OK} // unreachable: doExit never returns

	case SVCMemAlloc:
		p, err := k.heap.Alloc(req.Size, mem.Owner(req.Caller))
		return SVCResult{Code: CodeFromError(err), Ptr: p, Error: err}

	case SVCMemDealloc:
		err := k.heap.Dealloc(req.Ptr, mem.Owner(req.Caller), req.Caller == NullTaskID)
		return SVCResult{Code: CodeFromError(err), Error: err}

	case SVCCountExtFrag:
		return SVCResult{Code: OK, Count: k.heap.CountExtFrag(req.Size)}

	case SVCGetCurrentID:
		k.mu.Lock()
		tid := k.activeTID
		k.mu.Unlock()
		return SVCResult{Code: OK, TID: tid}

	default:
		return SVCResult{Code: ERROR, Error: ErrInvalidArgument}
	}
}
