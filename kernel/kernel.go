package kernel

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/talhaamir12/rtx/kernel/mem"
)

// Kernel is the single mutable context spec's design notes (§9) ask
// for: task table, heap, and tick counter owned by one value with
// interior synchronization, rather than scattered package globals.
type Kernel struct {
	mu sync.Mutex

	tasks    [MaxTasks]*TCB
	numTasks int

	activeTID TaskID
	tick      uint64

	initialized bool
	running     bool

	heap *mem.Heap
	log  *logrus.Entry

	// gates holds one channel per task that has been dispatched at
	// least once; sending on it resumes that task's parked goroutine.
	// driverReturn is signalled when a handoff settles back to "nobody
	// is running" and control belongs to whoever called in from outside
	// a task (Start or Tick).
	gates        map[TaskID]chan struct{}
	driverReturn chan struct{}
}

// New constructs a Kernel with a heap of heapSize bytes. heapSize
// stands in for spec's linker-derived region; the caller picks it
// (cmd/rtxsim takes it from the scenario's heap_bytes).
func New(heapSize uint32, log *logrus.Entry) *Kernel {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Kernel{
		heap:         mem.NewHeap(heapSize),
		log:          log,
		gates:        make(map[TaskID]chan struct{}),
		driverReturn: make(chan struct{}),
	}
}

// Init resets the task table to its clean dormant state and sets up
// the Null Task (spec §4.2, SVC #18's impl). It does not touch the
// heap; HeapInit (SVC #7) is a separate, explicitly invoked step,
// matching spec's SVC numbering.
func (k *Kernel) Init() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i := TaskID(0); i < MaxTasks; i++ {
		k.tasks[i] = &TCB{TID: i, State: Dormant, Deadline: DefaultDeadline}
	}

	k.tasks[NullTaskID].State = Ready
	k.tasks[NullTaskID].Deadline = InfiniteDeadline
	k.tasks[NullTaskID].TimeLeft = InfiniteDeadline
	k.tasks[NullTaskID].Fresh = false

	k.numTasks = 0
	k.activeTID = NullTaskID
	k.initialized = true
	k.running = false
	k.gates = make(map[TaskID]chan struct{})
	k.driverReturn = make(chan struct{})

	k.log.Debug("kernel initialized")
	return nil
}

// HeapInit is SVC #7's impl: requires the kernel to already be
// initialized (spec §4.1 "init — fails if the kernel has not been
// initialized").
func (k *Kernel) HeapInit() error {
	k.mu.Lock()
	initialized := k.initialized
	k.mu.Unlock()

	if !initialized {
		return errors.Wrap(ErrKernelState, "heap init before kernel init")
	}
	if err := k.heap.Init(); err != nil {
		return errors.Wrap(err, "heap init")
	}
	return nil
}

// Start is SVC #0's trigger (osKernelStart + the "start first task"
// trap): selects the first task under EDF, dispatches it, and blocks
// the caller until the resulting handoff chain idles out. Frames are
// primed at task creation, not here.
func (k *Kernel) Start() error {
	k.mu.Lock()
	if !k.initialized || k.running {
		k.mu.Unlock()
		return errors.Wrap(ErrKernelState, "kernel start")
	}

	first := k.selectNextLocked()
	if first == NullTaskID {
		k.mu.Unlock()
		return errors.Wrap(ErrNoReadyTask, "kernel start")
	}

	for tid := TaskID(1); tid < MaxTasks; tid++ {
		if k.tasks[tid].State == Ready {
			k.tasks[tid].TimeLeft = k.tasks[tid].Deadline
		}
	}

	k.running = true
	k.tick = 0
	k.mu.Unlock()

	k.log.WithField("tid", first).Info("kernel start")
	k.scheduleAndHandoff(false)
	return nil
}

// Running reports whether Start has succeeded.
func (k *Kernel) Running() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.running
}

// NumTasks mirrors g_num_tasks: live non-Null tasks.
func (k *Kernel) NumTasks() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.numTasks
}

// SystemTime mirrors g_system_time.
func (k *Kernel) SystemTime() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tick
}

// TaskInfo is SVC #5's impl: a value copy-out of a TCB, read-only.
func (k *Kernel) TaskInfo(tid TaskID) (TCB, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if tid >= MaxTasks {
		return TCB{}, errors.Wrap(ErrInvalidArgument, "task info")
	}
	return *k.tasks[tid], nil
}

func (k *Kernel) findDormantSlotLocked() TaskID {
	for tid := TaskID(1); tid < MaxTasks; tid++ {
		if k.tasks[tid].State == Dormant {
			return tid
		}
	}
	return NullTaskID
}
