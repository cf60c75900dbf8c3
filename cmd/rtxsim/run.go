package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/talhaamir12/rtx/config"
	"github.com/talhaamir12/rtx/hal"
	"github.com/talhaamir12/rtx/kernel"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Boot the kernel from a scenario manifest and drive its tick source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(args[0])
		},
	}
}

func runScenario(path string) error {
	log := logrus.NewEntry(logrus.StandardLogger())

	scenario, err := config.Load(path)
	if err != nil {
		return errors.Wrap(err, "load scenario")
	}

	board := hal.NewBoard(log)
	board.BringUp()

	k := kernel.New(scenario.HeapBytes, log)

	if res := k.Dispatch(kernel.SVCRequest{Num: kernel.SVCKernelInit}); res.Error != nil {
		return errors.Wrap(res.Error, "kernel init")
	}
	if res := k.Dispatch(kernel.SVCRequest{Num: kernel.SVCMemInit}); res.Error != nil {
		return errors.Wrap(res.Error, "heap init")
	}

	for _, ts := range scenario.Tasks {
		spec := kernel.TaskSpec{
			Entry:     taskBody(ts, log),
			StackSize: ts.StackBytes,
		}
		var res kernel.SVCResult
		if ts.Deadline > 0 {
			res = k.Dispatch(kernel.SVCRequest{Num: kernel.SVCTaskCreateDeadline, TaskSpec: spec, Deadline: ts.Deadline})
		} else {
			res = k.Dispatch(kernel.SVCRequest{Num: kernel.SVCTaskCreate, TaskSpec: spec})
		}
		if res.Error != nil {
			return errors.Wrapf(res.Error, "create task %q", ts.Name)
		}
		log.WithFields(logrus.Fields{"task": ts.Name, "tid": res.TID}).Info("created")
	}

	if res := k.Dispatch(kernel.SVCRequest{Num: kernel.SVCKernelStart}); res.Error != nil {
		return errors.Wrap(res.Error, "kernel start")
	}

	for i := 0; i < scenario.Ticks; i++ {
		k.Tick()
	}

	log.WithField("ticks", scenario.Ticks).Info("run complete")
	return nil
}
