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
	"crypto/sha512"
	"encoding/hex"
	"strconv"

	"github.com/dasys-lab/alica-messages-tp/payload"
)

// Address layout: 6 hex chars of namespace prefix followed by 64 hex chars
// identifying the record
const (
	namespacePrefixLength = 6
	recordSuffixLength    = 64
)

// TransactionFamily identifies the transaction family handled by this
// processor and derives the state addresses it owns
type TransactionFamily struct {
	Name     string
	Versions []string
}

func NewTransactionFamily(name string, versions []string) *TransactionFamily {
	return &TransactionFamily{
		Name:     name,
		Versions: versions,
	}
}

// Namespace returns the 6-character state address prefix for this family
func (f *TransactionFamily) Namespace() string {
	return hexDigest(f.Name)[:namespacePrefixLength]
}

// StateAddress computes the 70-character state address for a payload. The
// address depends only on agent ID, message type and timestamp: two payloads
// that agree on those three always collide, regardless of message content.
// That collision is the single-writer key of the create-once protocol.
func (f *TransactionFamily) StateAddress(p *payload.TransactionPayload) string {
	record := p.AgentId + p.MessageType + strconv.FormatUint(p.Timestamp, 10)
	return f.Namespace() + hexDigest(record)[:recordSuffixLength]
}

// hexDigest returns the lowercase hex encoding of the SHA-512 digest of the
// input
func hexDigest(input string) string {
	digest := sha512.Sum512([]byte(input))
	return hex.EncodeToString(digest[:])
}
