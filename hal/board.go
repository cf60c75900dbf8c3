package hal

import "github.com/sirupsen/logrus"

// Board groups the bring-up hooks spec.md §6 calls out as "opaque,
// called before kernel init": clock tree, GPIO, and UART setup on real
// silicon. None of it is observable here; each hook only logs at Debug
// so a trace of a simulated boot sequence still shows every step a
// board port would perform.
type Board struct {
	log *logrus.Entry
}

// NewBoard constructs a Board that logs through log (or the package
// default logger if nil).
func NewBoard(log *logrus.Entry) *Board {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Board{log: log}
}

func (b *Board) HALInit() {
	b.log.Debug("hal init")
}

func (b *Board) ClockConfig() {
	b.log.Debug("clock config")
}

func (b *Board) GPIOInit() {
	b.log.Debug("gpio init")
}

func (b *Board) UARTInit() {
	b.log.Debug("uart init")
}

// BringUp runs every bring-up hook in the order a real board's
// startup code would, before the kernel itself is initialized.
func (b *Board) BringUp() {
	b.HALInit()
	b.ClockConfig()
	b.GPIOInit()
	b.UARTInit()
}
