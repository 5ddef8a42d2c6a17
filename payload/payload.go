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

// Package payload implements the wire format for ALICA message transaction
// payloads. A payload is the unit of work submitted to the transaction
// family: it identifies the sending agent, names the embedded message type,
// carries the opaque message bytes and a submitter-supplied timestamp.
package payload

// TransactionPayload is a parsed transaction payload. It is created once per
// transaction from the raw payload bytes and not modified afterwards. Only
// MessageBytes is ever persisted; the rest is metadata used for validator
// selection and state addressing.
type TransactionPayload struct {
	AgentId      string
	MessageType  string
	MessageBytes []byte
	Timestamp    uint64
}

// Format describes a concrete encoding of a TransactionPayload. The
// transaction handler is constructed with a Format so that the payload
// encoding can be swapped without touching validation or state logic.
type Format interface {
	Deserialize(data []byte) (*TransactionPayload, error)
	Serialize(p *TransactionPayload) []byte
}
