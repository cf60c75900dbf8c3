package main

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/talhaamir12/rtx/config"
	"github.com/talhaamir12/rtx/kernel"
)

// taskBody builds a kernel.TaskFunc for one of the scenario's named
// bodies. Unknown names fall back to noop, logged as a warning, so a
// typo in a manifest degrades gracefully instead of panicking a run.
func taskBody(spec config.TaskSpec, log *logrus.Entry) kernel.TaskFunc {
	switch spec.Body {
	case "round-robin":
		return roundRobinBody(spec.Name, log)
	case "sleeper":
		return sleeperBody(spec.Name, spec.Arg, log)
	case "allocator-stress":
		return allocatorStressBody(spec.Name, log)
	case "periodic":
		return periodicBody(spec.Name, log)
	default:
		log.WithField("body", spec.Body).Warn("unknown task body, defaulting to noop")
		return func(arg interface{}, ctx *kernel.TaskContext) {}
	}
}

func roundRobinBody(name string, log *logrus.Entry) kernel.TaskFunc {
	return func(arg interface{}, ctx *kernel.TaskContext) {
		for i := 0; i < 5; i++ {
			log.WithFields(logrus.Fields{"task": name, "tid": ctx.TID(), "round": i}).Info("running")
			ctx.Yield()
		}
	}
}

func sleeperBody(name, arg string, log *logrus.Entry) kernel.TaskFunc {
	ms, err := strconv.Atoi(arg)
	if err != nil || ms <= 0 {
		ms = 3
	}
	return func(a interface{}, ctx *kernel.TaskContext) {
		for i := 0; i < 3; i++ {
			log.WithFields(logrus.Fields{"task": name, "tid": ctx.TID(), "round": i}).Info("sleeping")
			ctx.Sleep(int32(ms))
			log.WithFields(logrus.Fields{"task": name, "tid": ctx.TID(), "round": i}).Info("woke")
		}
	}
}

// periodicBody runs forever, once per period, re-arming at its next
// period boundary via ctx.PeriodYield rather than an immediate Yield.
// Meant for tasks created with a deadline (config's periodic: true).
func periodicBody(name string, log *logrus.Entry) kernel.TaskFunc {
	return func(arg interface{}, ctx *kernel.TaskContext) {
		for {
			log.WithFields(logrus.Fields{"task": name, "tid": ctx.TID()}).Info("period tick")
			ctx.PeriodYield()
		}
	}
}

func allocatorStressBody(name string, log *logrus.Entry) kernel.TaskFunc {
	return func(a interface{}, ctx *kernel.TaskContext) {
		for i := 0; i < 8; i++ {
			p, err := ctx.Alloc(32)
			if err != nil {
				log.WithFields(logrus.Fields{"task": name, "tid": ctx.TID()}).WithError(err).Warn("alloc failed")
				continue
			}
			if err := ctx.Dealloc(p); err != nil {
				log.WithFields(logrus.Fields{"task": name, "tid": ctx.TID()}).WithError(err).Warn("dealloc failed")
			}
			ctx.Yield()
		}
	}
}
