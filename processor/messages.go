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
	"fmt"

	"github.com/dasys-lab/alica-messages-tp/cbor"
)

// Message types
const (
	MessageTypeRegisterRequest    = 0
	MessageTypeRegisterResponse   = 1
	MessageTypeProcessRequest     = 2
	MessageTypeProcessResponse    = 3
	MessageTypeStateGetRequest    = 4
	MessageTypeStateGetResponse   = 5
	MessageTypeStateSetRequest    = 6
	MessageTypeStateSetResponse   = 7
	MessageTypeEventAddRequest    = 8
	MessageTypeEventAddResponse   = 9
	MessageTypeReceiptAddRequest  = 10
	MessageTypeReceiptAddResponse = 11
	MessageTypePingRequest        = 12
	MessageTypePingResponse       = 13
)

// Process response statuses
const (
	StatusOk                 = 0
	StatusInvalidTransaction = 1
	StatusInternalError      = 2
)

// Message is the common interface for wire messages
type Message interface {
	SetCbor([]byte)
	Cbor() []byte
	Type() uint8
	Correlation() string
}

type MessageBase struct {
	// Tells the CBOR decoder to convert to/from a struct and a CBOR array
	_             struct{} `cbor:",toarray"`
	rawCbor       []byte
	MessageType   uint8
	CorrelationId string
}

func (m *MessageBase) SetCbor(data []byte) {
	m.rawCbor = make([]byte, len(data))
	copy(m.rawCbor, data)
}

func (m *MessageBase) Cbor() []byte {
	return m.rawCbor
}

func (m *MessageBase) Type() uint8 {
	return m.MessageType
}

func (m *MessageBase) Correlation() string {
	return m.CorrelationId
}

// NewMsgFromCbor parses a processor protocol message from CBOR
func NewMsgFromCbor(data []byte) (Message, error) {
	msgType, err := cbor.DecodeMessageType(data)
	if err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	var ret Message
	switch msgType {
	case MessageTypeRegisterRequest:
		ret = &MsgRegisterRequest{}
	case MessageTypeRegisterResponse:
		ret = &MsgRegisterResponse{}
	case MessageTypeProcessRequest:
		ret = &MsgProcessRequest{}
	case MessageTypeProcessResponse:
		ret = &MsgProcessResponse{}
	case MessageTypeStateGetRequest:
		ret = &MsgStateGetRequest{}
	case MessageTypeStateGetResponse:
		ret = &MsgStateGetResponse{}
	case MessageTypeStateSetRequest:
		ret = &MsgStateSetRequest{}
	case MessageTypeStateSetResponse:
		ret = &MsgStateSetResponse{}
	case MessageTypeEventAddRequest:
		ret = &MsgEventAddRequest{}
	case MessageTypeEventAddResponse:
		ret = &MsgEventAddResponse{}
	case MessageTypeReceiptAddRequest:
		ret = &MsgReceiptAddRequest{}
	case MessageTypeReceiptAddResponse:
		ret = &MsgReceiptAddResponse{}
	case MessageTypePingRequest:
		ret = &MsgPingRequest{}
	case MessageTypePingResponse:
		ret = &MsgPingResponse{}
	default:
		return nil, fmt.Errorf("unknown message type: %d", msgType)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	// Store the raw message CBOR
	ret.SetCbor(data)
	return ret, nil
}

// MsgRegisterRequest announces a transaction family to the validator
type MsgRegisterRequest struct {
	MessageBase
	Family     string
	Versions   []string
	Namespaces []string
}

func NewMsgRegisterRequest(
	correlationId string,
	family string,
	versions []string,
	namespaces []string,
) *MsgRegisterRequest {
	return &MsgRegisterRequest{
		MessageBase: MessageBase{
			MessageType:   MessageTypeRegisterRequest,
			CorrelationId: correlationId,
		},
		Family:     family,
		Versions:   versions,
		Namespaces: namespaces,
	}
}

type MsgRegisterResponse struct {
	MessageBase
	Ok     bool
	Reason string
}

func NewMsgRegisterResponse(correlationId string, ok bool, reason string) *MsgRegisterResponse {
	return &MsgRegisterResponse{
		MessageBase: MessageBase{
			MessageType:   MessageTypeRegisterResponse,
			CorrelationId: correlationId,
		},
		Ok:     ok,
		Reason: reason,
	}
}

// MsgProcessRequest carries one submitted transaction from the validator
type MsgProcessRequest struct {
	MessageBase
	SignerPublicKey string
	Payload         []byte
}

func NewMsgProcessRequest(
	correlationId string,
	signerPublicKey string,
	payload []byte,
) *MsgProcessRequest {
	return &MsgProcessRequest{
		MessageBase: MessageBase{
			MessageType:   MessageTypeProcessRequest,
			CorrelationId: correlationId,
		},
		SignerPublicKey: signerPublicKey,
		Payload:         payload,
	}
}

// MsgProcessResponse reports the fate of one transaction back to the
// validator
type MsgProcessResponse struct {
	MessageBase
	Status  uint8
	Message string
}

func NewMsgProcessResponse(correlationId string, status uint8, message string) *MsgProcessResponse {
	return &MsgProcessResponse{
		MessageBase: MessageBase{
			MessageType:   MessageTypeProcessResponse,
			CorrelationId: correlationId,
		},
		Status:  status,
		Message: message,
	}
}

// StateEntry is a stored value at a state address as carried on the wire
type StateEntry struct {
	cbor.StructAsArray
	Address string
	Data    []byte
}

type MsgStateGetRequest struct {
	MessageBase
	Addresses []string
}

func NewMsgStateGetRequest(correlationId string, addresses []string) *MsgStateGetRequest {
	return &MsgStateGetRequest{
		MessageBase: MessageBase{
			MessageType:   MessageTypeStateGetRequest,
			CorrelationId: correlationId,
		},
		Addresses: addresses,
	}
}

type MsgStateGetResponse struct {
	MessageBase
	Entries []StateEntry
}

func NewMsgStateGetResponse(correlationId string, entries []StateEntry) *MsgStateGetResponse {
	return &MsgStateGetResponse{
		MessageBase: MessageBase{
			MessageType:   MessageTypeStateGetResponse,
			CorrelationId: correlationId,
		},
		Entries: entries,
	}
}

type MsgStateSetRequest struct {
	MessageBase
	Entries []StateEntry
}

func NewMsgStateSetRequest(correlationId string, entries []StateEntry) *MsgStateSetRequest {
	return &MsgStateSetRequest{
		MessageBase: MessageBase{
			MessageType:   MessageTypeStateSetRequest,
			CorrelationId: correlationId,
		},
		Entries: entries,
	}
}

type MsgStateSetResponse struct {
	MessageBase
	Ok     bool
	Reason string
}

func NewMsgStateSetResponse(correlationId string, ok bool, reason string) *MsgStateSetResponse {
	return &MsgStateSetResponse{
		MessageBase: MessageBase{
			MessageType:   MessageTypeStateSetResponse,
			CorrelationId: correlationId,
		},
		Ok:     ok,
		Reason: reason,
	}
}

// EventAttribute is a key/value pair attached to an emitted event
type EventAttribute struct {
	cbor.StructAsArray
	Key   string
	Value string
}

type MsgEventAddRequest struct {
	MessageBase
	EventType  string
	Attributes []EventAttribute
	Data       []byte
}

func NewMsgEventAddRequest(
	correlationId string,
	eventType string,
	attributes []EventAttribute,
	data []byte,
) *MsgEventAddRequest {
	return &MsgEventAddRequest{
		MessageBase: MessageBase{
			MessageType:   MessageTypeEventAddRequest,
			CorrelationId: correlationId,
		},
		EventType:  eventType,
		Attributes: attributes,
		Data:       data,
	}
}

type MsgEventAddResponse struct {
	MessageBase
	Ok     bool
	Reason string
}

func NewMsgEventAddResponse(correlationId string, ok bool, reason string) *MsgEventAddResponse {
	return &MsgEventAddResponse{
		MessageBase: MessageBase{
			MessageType:   MessageTypeEventAddResponse,
			CorrelationId: correlationId,
		},
		Ok:     ok,
		Reason: reason,
	}
}

type MsgReceiptAddRequest struct {
	MessageBase
	Data []byte
}

func NewMsgReceiptAddRequest(correlationId string, data []byte) *MsgReceiptAddRequest {
	return &MsgReceiptAddRequest{
		MessageBase: MessageBase{
			MessageType:   MessageTypeReceiptAddRequest,
			CorrelationId: correlationId,
		},
		Data: data,
	}
}

type MsgReceiptAddResponse struct {
	MessageBase
	Ok     bool
	Reason string
}

func NewMsgReceiptAddResponse(correlationId string, ok bool, reason string) *MsgReceiptAddResponse {
	return &MsgReceiptAddResponse{
		MessageBase: MessageBase{
			MessageType:   MessageTypeReceiptAddResponse,
			CorrelationId: correlationId,
		},
		Ok:     ok,
		Reason: reason,
	}
}

type MsgPingRequest struct {
	MessageBase
}

func NewMsgPingRequest(correlationId string) *MsgPingRequest {
	return &MsgPingRequest{
		MessageBase: MessageBase{
			MessageType:   MessageTypePingRequest,
			CorrelationId: correlationId,
		},
	}
}

type MsgPingResponse struct {
	MessageBase
}

func NewMsgPingResponse(correlationId string) *MsgPingResponse {
	return &MsgPingResponse{
		MessageBase: MessageBase{
			MessageType:   MessageTypePingResponse,
			CorrelationId: correlationId,
		},
	}
}
