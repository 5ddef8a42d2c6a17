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

package processor

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frames are a 4-byte big-endian length prefix followed by one CBOR-encoded
// message
const (
	frameHeaderLength = 4

	// Generous upper bound; a frame larger than this indicates a corrupt
	// stream rather than a real message
	maxFrameLength = 1 << 22
)

func writeFrame(w io.Writer, data []byte) error {
	if len(data) > maxFrameLength {
		return fmt.Errorf(
			"frame length %d exceeds maximum %d",
			len(data),
			maxFrameLength,
		)
	}
	frame := make([]byte, frameHeaderLength+len(data))
	binary.BigEndian.PutUint32(frame, uint32(len(data)))
	copy(frame[frameHeaderLength:], data)
	_, err := w.Write(frame)
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, frameHeaderLength)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(header)
	if length > maxFrameLength {
		return nil, fmt.Errorf(
			"frame length %d exceeds maximum %d",
			length,
			maxFrameLength,
		)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
