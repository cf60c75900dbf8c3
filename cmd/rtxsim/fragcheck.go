package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/talhaamir12/rtx/kernel/mem"
)

func newFragcheckCmd() *cobra.Command {
	var heapBytes uint32
	var allocSize uint32
	var count int

	cmd := &cobra.Command{
		Use:   "fragcheck",
		Short: "Allocate and free a fixed pattern, then report external fragmentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFragcheck(heapBytes, allocSize, count)
		},
	}

	cmd.Flags().Uint32Var(&heapBytes, "heap-bytes", 8192, "heap region size")
	cmd.Flags().Uint32Var(&allocSize, "alloc-size", 64, "payload size per allocation")
	cmd.Flags().IntVar(&count, "count", 16, "number of allocations, every other one freed")
	return cmd
}

func runFragcheck(heapBytes, allocSize uint32, count int) error {
	h := mem.NewHeap(heapBytes)
	if err := h.Init(); err != nil {
		return errors.Wrap(err, "heap init")
	}

	var ptrs []mem.Addr
	for i := 0; i < count; i++ {
		p, err := h.Alloc(allocSize, mem.Owner(i+1))
		if err != nil {
			break
		}
		ptrs = append(ptrs, p)
	}
	for i, p := range ptrs {
		if i%2 == 0 {
			if err := h.Dealloc(p, mem.Owner(i+1), false); err != nil {
				return errors.Wrap(err, "dealloc")
			}
		}
	}

	fmt.Printf("free blocks: %d\n", h.FreeBlockCount())
	fmt.Printf("blocks too small for %d bytes: %d\n", allocSize, h.CountExtFrag(allocSize))
	return nil
}
