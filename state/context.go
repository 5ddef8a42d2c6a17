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

// Package state defines the contract the transaction handler requires from
// the ledger's key-value state store. The store itself lives in the
// validator; this package only describes the operations the handler performs
// against it, plus an in-memory implementation for tests and standalone use.
package state

// Entry is a single stored value at a state address
type Entry struct {
	Address string
	Data    []byte
}

// EventAttribute is a key/value pair attached to an emitted event
type EventAttribute struct {
	Key   string
	Value string
}

// Context is the handler's view of ledger state for one transaction. Get
// returns only entries that exist; addresses without an entry are absent
// from the result. Implementations are not required to serialize concurrent
// access to the same address: the surrounding system must guarantee that
// conflicting transactions are serialized or aborted upstream.
type Context interface {
	// GetState returns the existing entries at the given addresses
	GetState(addresses []string) ([]Entry, error)

	// SetState stores the given entries
	SetState(entries []Entry) error

	// AddEvent emits an application event for subscribers
	AddEvent(eventType string, attributes []EventAttribute, data []byte) error

	// AddReceiptData attaches opaque data to the transaction receipt
	AddReceiptData(data []byte) error
}
