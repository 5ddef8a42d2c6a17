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

package cbor_test

import (
	"reflect"
	"testing"

	"github.com/dasys-lab/alica-messages-tp/cbor"
)

type testMessage struct {
	cbor.StructAsArray
	MessageType   uint8
	CorrelationId string
	Body          []byte
}

func TestEncodeDecodeStructAsArray(t *testing.T) {
	msg := testMessage{
		MessageType:   2,
		CorrelationId: "corr-1",
		Body:          []byte("payload"),
	}
	data, err := cbor.Encode(&msg)
	if err != nil {
		t.Fatalf("unexpected error encoding message: %s", err)
	}
	var decoded testMessage
	consumed, err := cbor.Decode(data, &decoded)
	if err != nil {
		t.Fatalf("unexpected error decoding message: %s", err)
	}
	if consumed != len(data) {
		t.Fatalf("unexpected consumed byte count: got %d, wanted %d", consumed, len(data))
	}
	if !reflect.DeepEqual(msg, decoded) {
		t.Fatalf("decoded message differs: got %+v, wanted %+v", decoded, msg)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	msg := map[string]any{"b": 2, "a": 1, "c": 3}
	first, err := cbor.Encode(msg)
	if err != nil {
		t.Fatalf("unexpected error encoding message: %s", err)
	}
	second, err := cbor.Encode(msg)
	if err != nil {
		t.Fatalf("unexpected error encoding message: %s", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("encodings differ: %x vs %x", first, second)
	}
}

func TestDecodeMessageType(t *testing.T) {
	msg := testMessage{
		MessageType:   7,
		CorrelationId: "corr-2",
	}
	data, err := cbor.Encode(&msg)
	if err != nil {
		t.Fatalf("unexpected error encoding message: %s", err)
	}
	msgType, err := cbor.DecodeMessageType(data)
	if err != nil {
		t.Fatalf("unexpected error decoding message type: %s", err)
	}
	if msgType != 7 {
		t.Fatalf("unexpected message type: got %d, wanted 7", msgType)
	}
}

func TestDecodeMessageTypeRejectsEmptyArray(t *testing.T) {
	data, err := cbor.Encode([]any{})
	if err != nil {
		t.Fatalf("unexpected error encoding message: %s", err)
	}
	if _, err := cbor.DecodeMessageType(data); err == nil {
		t.Fatalf("expected error, got none")
	}
}
