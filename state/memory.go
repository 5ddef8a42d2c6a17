// Copyright 2025 DASys Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package state

import (
	"sync"
)

// Event is an emitted application event as recorded by MemoryContext
type Event struct {
	EventType  string
	Attributes []EventAttribute
	Data       []byte
}

// MemoryContext is an in-memory Context. It backs handler tests and the
// standalone mode of the processor daemon.
type MemoryContext struct {
	mutex    sync.Mutex
	entries  map[string][]byte
	events   []Event
	receipts [][]byte
}

func NewMemoryContext() *MemoryContext {
	return &MemoryContext{
		entries: map[string][]byte{},
	}
}

func (c *MemoryContext) GetState(addresses []string) ([]Entry, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	var ret []Entry
	for _, address := range addresses {
		if data, ok := c.entries[address]; ok {
			out := make([]byte, len(data))
			copy(out, data)
			ret = append(ret, Entry{Address: address, Data: out})
		}
	}
	return ret, nil
}

func (c *MemoryContext) SetState(entries []Entry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, entry := range entries {
		data := make([]byte, len(entry.Data))
		copy(data, entry.Data)
		c.entries[entry.Address] = data
	}
	return nil
}

func (c *MemoryContext) AddEvent(
	eventType string,
	attributes []EventAttribute,
	data []byte,
) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.events = append(c.events, Event{
		EventType:  eventType,
		Attributes: attributes,
		Data:       data,
	})
	return nil
}

func (c *MemoryContext) AddReceiptData(data []byte) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.receipts = append(c.receipts, data)
	return nil
}

// Events returns the events recorded so far
func (c *MemoryContext) Events() []Event {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]Event{}, c.events...)
}

// Receipts returns the receipt data recorded so far
func (c *MemoryContext) Receipts() [][]byte {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([][]byte{}, c.receipts...)
}
