// Package config loads simulation scenarios from YAML, replacing the
// original's hand-coded main.c task table with a declarative harness
// (spec.md's core semantics are unaffected; this only changes how a
// run is described).
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TaskSpec describes one task to create at boot.
type TaskSpec struct {
	Name       string `yaml:"name"`
	Body       string `yaml:"body"`
	Deadline   int32  `yaml:"deadline"`
	Periodic   bool   `yaml:"periodic"`
	StackBytes uint32 `yaml:"stack_bytes"`
	Arg        string `yaml:"arg"`
}

// Scenario is a whole simulation run: a heap size, a tick source, and
// the set of tasks to create before starting the kernel.
type Scenario struct {
	HeapBytes  uint32     `yaml:"heap_bytes"`
	TickMillis int        `yaml:"tick_millis"`
	Ticks      int        `yaml:"ticks"`
	Tasks      []TaskSpec `yaml:"tasks"`
}

// Load reads and validates a scenario manifest from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.HeapBytes == 0 {
		return errors.New("config: heap_bytes must be set")
	}
	if s.Ticks < 0 {
		return errors.New("config: ticks must not be negative")
	}
	if len(s.Tasks) == 0 {
		return errors.New("config: at least one task is required")
	}
	for i, t := range s.Tasks {
		if t.Name == "" {
			return errors.Errorf("config: task %d: name is required", i)
		}
		if t.Body == "" {
			return errors.Errorf("config: task %q: body is required", t.Name)
		}
		if t.Periodic && t.Deadline <= 0 {
			return errors.Errorf("config: task %q: periodic requires a positive deadline", t.Name)
		}
	}
	return nil
}
