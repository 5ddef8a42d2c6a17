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

package payload

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Payload syntax: agent_id|message_type|message|timestamp
const (
	pipeDelimiter     = "|"
	requiredPartCount = 4
)

// PipeFormat encodes a TransactionPayload as UTF-8 text with exactly four
// pipe-separated parts. None of the parts may themselves contain the
// delimiter; the parser performs no escaping.
type PipeFormat struct{}

func NewPipeFormat() *PipeFormat {
	return &PipeFormat{}
}

// Deserialize parses raw payload bytes. The check is purely structural:
// field content such as an empty agent ID is accepted here.
func (f *PipeFormat) Deserialize(data []byte) (*TransactionPayload, error) {
	if !utf8.Valid(data) {
		return nil, ErrNotUtf8
	}
	parts := strings.Split(string(data), pipeDelimiter)
	if len(parts) != requiredPartCount {
		return nil, fmt.Errorf(
			"%w: expected %d parts, got %d",
			ErrWrongPartCount,
			requiredPartCount,
			len(parts),
		)
	}
	timestamp, err := strconv.ParseUint(parts[3], 10, 64)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}
	return &TransactionPayload{
		AgentId:      parts[0],
		MessageType:  parts[1],
		MessageBytes: []byte(parts[2]),
		Timestamp:    timestamp,
	}, nil
}

// Serialize produces the pipe-separated form of the payload
func (f *PipeFormat) Serialize(p *TransactionPayload) []byte {
	return fmt.Appendf(
		nil,
		"%s|%s|%s|%d",
		p.AgentId,
		p.MessageType,
		p.MessageBytes,
		p.Timestamp,
	)
}
