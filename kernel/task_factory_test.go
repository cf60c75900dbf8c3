package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func noopBody(arg interface{}, ctx *TaskContext) {}

func TestCreateTaskBeforeInitFails(t *testing.T) {
	k := New(4096, nil)
	_, err := k.CreateTask(TaskSpec{Entry: noopBody, StackSize: MinimumStack})
	require.ErrorIs(t, err, ErrKernelState)
}

func TestCreateTaskRejectsNilEntry(t *testing.T) {
	k := newStartedKernel(t, 4096)
	_, err := k.CreateTask(TaskSpec{StackSize: MinimumStack})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateTaskPromotesUndersizedStackToMinimum(t *testing.T) {
	k := newStartedKernel(t, 16384)
	tid, err := k.CreateTask(TaskSpec{Entry: noopBody, StackSize: 16})
	require.NoError(t, err)
	info, err := k.TaskInfo(tid)
	require.NoError(t, err)
	require.EqualValues(t, MinimumStack, info.StackSize)
}

func TestCreateTaskWithDeadlineRejectsNonPositiveDeadline(t *testing.T) {
	k := newStartedKernel(t, 4096)
	_, err := k.CreateTaskWithDeadline(TaskSpec{Entry: noopBody, StackSize: MinimumStack}, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateTaskWithDeadlineMarksTaskPeriodic(t *testing.T) {
	k := newStartedKernel(t, 16384)
	tid, err := k.CreateTaskWithDeadline(TaskSpec{Entry: noopBody, StackSize: MinimumStack}, 7)
	require.NoError(t, err)

	info, err := k.TaskInfo(tid)
	require.NoError(t, err)
	require.True(t, info.IsPeriodic, "create_with_deadline must mark the task periodic at creation")
	require.EqualValues(t, 7, info.Deadline)
	require.EqualValues(t, 7, info.TimeLeft)
}

func TestCreateTaskRejectsResourceExhaustion(t *testing.T) {
	k := newStartedKernel(t, 64*1024)

	for i := 0; i < MaxTasks-1; i++ {
		_, err := k.CreateTask(TaskSpec{Entry: noopBody, StackSize: MinimumStack})
		require.NoError(t, err)
	}

	_, err := k.CreateTask(TaskSpec{Entry: noopBody, StackSize: MinimumStack})
	require.ErrorIs(t, err, ErrResourceExhausted)
}

func TestCreateTaskRejectsWhenHeapExhausted(t *testing.T) {
	k := newStartedKernel(t, MinimumStack+64)

	_, err := k.CreateTask(TaskSpec{Entry: noopBody, StackSize: MinimumStack})
	require.NoError(t, err)

	_, err = k.CreateTask(TaskSpec{Entry: noopBody, StackSize: MinimumStack})
	require.Error(t, err)
}

func TestSetDeadlineRejectsNonPositive(t *testing.T) {
	k := newStartedKernel(t, 16384)
	tid, err := k.CreateTask(TaskSpec{Entry: noopBody, StackSize: MinimumStack})
	require.NoError(t, err)
	require.ErrorIs(t, k.SetDeadline(tid, 0), ErrInvalidArgument)
}

func TestSetDeadlineRejectsDormantTarget(t *testing.T) {
	k := newStartedKernel(t, 4096)
	require.ErrorIs(t, k.SetDeadline(TaskID(3), 5), ErrInvalidArgument)
}

func TestTaskInfoRejectsOutOfRangeTID(t *testing.T) {
	k := newStartedKernel(t, 4096)
	_, err := k.TaskInfo(TaskID(MaxTasks))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStartTwiceFails(t *testing.T) {
	k := newStartedKernel(t, 16384)
	_, err := k.CreateTask(TaskSpec{Entry: noopBody, StackSize: MinimumStack})
	require.NoError(t, err)

	require.NoError(t, k.Start())
	require.ErrorIs(t, k.Start(), ErrKernelState)
}
