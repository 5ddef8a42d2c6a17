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
	"errors"
	"fmt"
)

// DuplicateAddressError rejects a commit whose computed address is already
// occupied by exactly one entry. The create-once invariant makes this a
// permanent rejection: the same (agent ID, message type, timestamp) triple
// can never be committed twice, even with different message content.
type DuplicateAddressError struct {
	Address string
}

func (e DuplicateAddressError) Error() string {
	return fmt.Sprintf("message with address %s already exists", e.Address)
}

// InconsistentStateError reports more than one stored entry at a single
// address. The store's own invariants make this unreachable in a healthy
// system; seeing it means external state corruption. It is non-retryable and
// must not be conflated with an ordinary duplicate.
type InconsistentStateError struct {
	Address    string
	EntryCount int
}

func (e InconsistentStateError) Error() string {
	return fmt.Sprintf(
		"inconsistent state: %d entries found at address %s",
		e.EntryCount,
		e.Address,
	)
}

// StoreError wraps a failure of the external state store. It does not judge
// the transaction's validity, only the inability to determine or record its
// fate; whether a retry makes sense is up to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e StoreError) Error() string {
	return fmt.Sprintf("state store %s failed: %s", e.Op, e.Err)
}

func (e StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether the error is a store failure rather than a
// rejection of the transaction itself
func IsStoreError(err error) bool {
	var storeErr StoreError
	return errors.As(err, &storeErr)
}
