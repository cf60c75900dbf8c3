package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Dispatch is spec's SVC gate: every task-facing kernel operation
// should be reachable through it, with SVC numbers matching spec §4.7's
// table wherever the table assigns one.
func TestDispatchUnknownNumberReturnsError(t *testing.T) {
	k := newStartedKernel(t, 4096)
	res := k.Dispatch(SVCRequest{Num: 99})
	require.Equal(t, ERROR, res.Code)
	require.ErrorIs(t, res.Error, ErrInvalidArgument)
}

func TestDispatchCreateTaskAndGetCurrentID(t *testing.T) {
	k := newStartedKernel(t, 16384)

	var seenTID, dispatchTID TaskID
	done := make(chan struct{})
	body := func(arg interface{}, ctx *TaskContext) {
		seenTID = ctx.TID()
		dispatchTID = ctx.k.Dispatch(SVCRequest{Num: SVCGetCurrentID}).TID
		close(done)
	}

	createRes := k.Dispatch(SVCRequest{
		Num:      SVCTaskCreate,
		TaskSpec: TaskSpec{Entry: body, StackSize: MinimumStack},
	})
	require.NoError(t, createRes.Error)
	require.NotEqual(t, NullTaskID, createRes.TID)

	startRes := k.Dispatch(SVCRequest{Num: SVCKernelStart})
	require.NoError(t, startRes.Error)

	<-done
	require.Equal(t, createRes.TID, seenTID)
	require.Equal(t, createRes.TID, dispatchTID)
}

func TestDispatchCountExtFrag(t *testing.T) {
	k := newStartedKernel(t, 4096)

	allocRes := k.Dispatch(SVCRequest{Num: SVCMemAlloc, Caller: NullTaskID, Size: 64})
	require.NoError(t, allocRes.Error)

	fragRes := k.Dispatch(SVCRequest{Num: SVCCountExtFrag, Size: 4096})
	require.Equal(t, OK, fragRes.Code)
	require.GreaterOrEqual(t, fragRes.Count, 0)

	deallocRes := k.Dispatch(SVCRequest{Num: SVCMemDealloc, Caller: NullTaskID, Ptr: allocRes.Ptr})
	require.NoError(t, deallocRes.Error)
}
