package kv

import "sync"

// Memory is an in-process Storage. Writes fail for keys listed in FailKeys,
// which lets callers exercise storage failures.
type Memory struct {
	mu       sync.Mutex
	values   map[string]string
	FailKeys map[string]error
	writes   int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Read(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Write(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailKeys[key]; ok {
		return writeErr(key, err)
	}
	m.values[key] = value
	m.writes++
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// Writes returns how many successful writes happened.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Fail makes every later write to key return err. A nil err clears it.
func (m *Memory) Fail(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailKeys == nil {
		m.FailKeys = make(map[string]error)
	}
	if err == nil {
		delete(m.FailKeys, key)
		return
	}
	m.FailKeys[key] = err
}
