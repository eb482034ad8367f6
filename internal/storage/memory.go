package storage

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Memory is an in-process Storage for tests and offline runs.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *Memory) Save(path, contentType string, content io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = buf.Bytes()
	m.types[path] = contentType
	return nil
}

func (m *Memory) Delete(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	delete(m.types, path)
	return nil
}

func (m *Memory) URL(path string, public bool) (string, error) {
	if public {
		return "memory://public/" + path, nil
	}
	return "memory://private/" + path, nil
}

// Object returns a stored object and its content type.
func (m *Memory) Object(path string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[path]
	return b, m.types[path], ok
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
