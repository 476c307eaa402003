package kv

import "sync"

// Memory is an in-process KeyValueStore. Nothing survives the process.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
