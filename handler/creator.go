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

package handler

import (
	"github.com/dasys-lab/alica-messages-tp/state"
)

// StateCreator performs the create-once write for a single transaction. The
// check-then-write sequence is not atomic here: the surrounding system must
// serialize conflicting transactions for the same address or abort one of
// them upstream.
type StateCreator struct {
	ctx state.Context
}

func NewStateCreator(ctx state.Context) *StateCreator {
	return &StateCreator{
		ctx: ctx,
	}
}

// CreateAt stores data at the given address if and only if the address holds
// no entry yet. Exactly one existing entry is a duplicate; more than one is
// a store-level invariant violation.
func (c *StateCreator) CreateAt(data []byte, address string) error {
	entries, err := c.ctx.GetState([]string{address})
	if err != nil {
		return StoreError{Op: "get", Err: err}
	}
	switch len(entries) {
	case 0:
		if err := c.ctx.SetState([]state.Entry{{Address: address, Data: data}}); err != nil {
			return StoreError{Op: "set", Err: err}
		}
		return nil
	case 1:
		return DuplicateAddressError{Address: address}
	default:
		return InconsistentStateError{
			Address:    address,
			EntryCount: len(entries),
		}
	}
}
