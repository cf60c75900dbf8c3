package hal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talhaamir12/rtx/kernel"
)

func TestSoftcorePSPRoundTrip(t *testing.T) {
	s := NewSoftcore()
	s.SavePSP(kernel.TaskID(3), 0xDEADBEEF)
	require.Equal(t, uintptr(0xDEADBEEF), s.LoadPSP(3))
}

func TestSoftcorePendCount(t *testing.T) {
	s := NewSoftcore()
	require.Zero(t, s.PendCount())
	s.PendSwitch()
	s.PendSwitch()
	require.Equal(t, 2, s.PendCount())
}

func TestSoftcoreDecodeSVCImmediate(t *testing.T) {
	s := NewSoftcore()
	frame := kernel.NewExceptionFrame(0, 0)
	frame.SVCImmediate = kernel.SVCYield
	require.EqualValues(t, kernel.SVCYield, s.DecodeSVCImmediate(frame))
	require.Zero(t, s.DecodeSVCImmediate(nil))
}
