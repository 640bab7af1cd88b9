// This file is part of imxoverlay.
//
// imxoverlay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// imxoverlay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with imxoverlay.  If not, see <https://www.gnu.org/licenses/>.

// Package environment is an abstraction of an environment-like key/value
// store. Values placed in the Process store are inherited by child
// processes, meaning that a value chosen by a parent process is seen by the
// pipeline it launches.
//
// Components that share a value across processes take a Store as an
// argument rather than calling os.Getenv() directly. Tests use the Memory
// store.
package environment

import (
	"os"
	"sync"
)

// Store is a key/value store of strings.
type Store interface {
	Lookup(key string) (string, bool)
	Set(key string, value string) error
}

// Process is the environment of the running process.
type Process struct{}

// Lookup implements the Store interface.
func (Process) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set implements the Store interface.
func (Process) Set(key string, value string) error {
	return os.Setenv(key, value)
}

// Memory is a Store that exists only for the lifetime of the instance.
type Memory struct {
	crit   sync.Mutex
	values map[string]string
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The initial map is copied.
func NewMemory(initial map[string]string) *Memory {
	m := &Memory{
		values: make(map[string]string),
	}
	for k, v := range initial {
		m.values[k] = v
	}
	return m
}

// Lookup implements the Store interface.
func (m *Memory) Lookup(key string) (string, bool) {
	m.crit.Lock()
	defer m.crit.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements the Store interface.
func (m *Memory) Set(key string, value string) error {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.values[key] = value
	return nil
}
