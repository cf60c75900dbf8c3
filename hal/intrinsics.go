// Package hal stands in for the hardware-tied half of the original
// kernel port: PSP save/restore, the PendSV trap, SVC-immediate
// decode, and board bring-up. None of it has real silicon underneath;
// kernel owns the actual goroutine-based context switch (see
// kernel/context_switch.go) since that is where the scheduling
// decisions live. This package exists so the hardware-shaped surface
// spec.md's §6/§9 describe has a concrete, separately testable home,
// and so a future real board port only has to replace this package.
package hal

import "github.com/talhaamir12/rtx/kernel"

// Intrinsics is the hardware-tied surface a board port must supply:
// save/restore the process stack pointer, request a pended context
// switch, decode which SVC number a trapped instruction carries, and
// gate interrupts/the system tick around critical sections.
type Intrinsics interface {
	SavePSP(tid kernel.TaskID, sp uintptr)
	LoadPSP(tid kernel.TaskID) uintptr
	PendSwitch()
	DecodeSVCImmediate(frame *kernel.ExceptionFrame) uint8
	DisableIRQ() (restore func())
	MaskTick() (restore func())
}
