package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValidScenario(t *testing.T) {
	path := writeScenario(t, `
heap_bytes: 16384
tick_millis: 10
ticks: 50
tasks:
  - name: worker-a
    body: round-robin
    deadline: 5
  - name: worker-b
    body: sleeper
    deadline: 3
    periodic: true
    stack_bytes: 2048
`)

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(16384), s.HeapBytes)
	require.Len(t, s.Tasks, 2)
	require.True(t, s.Tasks[1].Periodic)
}

func TestLoadRejectsMissingHeapBytes(t *testing.T) {
	path := writeScenario(t, `
tasks:
  - name: worker-a
    body: round-robin
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsNoTasks(t *testing.T) {
	path := writeScenario(t, `
heap_bytes: 4096
tasks: []
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsPeriodicWithoutDeadline(t *testing.T) {
	path := writeScenario(t, `
heap_bytes: 4096
tasks:
  - name: worker-a
    body: periodic
    periodic: true
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsTaskWithoutBody(t *testing.T) {
	path := writeScenario(t, `
heap_bytes: 4096
tasks:
  - name: worker-a
`)
	_, err := Load(path)
	require.Error(t, err)
}
