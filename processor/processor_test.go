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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"

	"github.com/dasys-lab/alica-messages-tp/cbor"
	"github.com/dasys-lab/alica-messages-tp/handler"
	"github.com/dasys-lab/alica-messages-tp/messages"
	"github.com/dasys-lab/alica-messages-tp/payload"
	"go.uber.org/goleak"
)

const validEngineInfoJson = `{"senderId": {"type": 1, "value": "agent-1"}, "masterPlan": "M", "currentPlan": "P", "currentState": "S", "currentRole": "R", "currentTask": "T", "agentIdsWithMe": []}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHandler() *handler.Handler {
	return handler.NewHandler(
		handler.NewTransactionFamily("alica_messages", []string{"0.1.0"}),
		payload.NewPipeFormat(),
		messages.NewDefaultRegistry(),
		testLogger(),
	)
}

// mockValidator drives the validator side of a connection through a scripted
// conversation. Script errors surface through Done.
type mockValidator struct {
	conn net.Conn
	Done chan error
}

func newMockValidator(conn net.Conn, script func(*mockValidator) error) *mockValidator {
	v := &mockValidator{
		conn: conn,
		Done: make(chan error, 1),
	}
	go func() {
		v.Done <- script(v)
	}()
	return v
}

func (v *mockValidator) recv() (Message, error) {
	data, err := readFrame(v.conn)
	if err != nil {
		return nil, err
	}
	return NewMsgFromCbor(data)
}

func (v *mockValidator) send(msg Message) error {
	data, err := cbor.Encode(msg)
	if err != nil {
		return err
	}
	return writeFrame(v.conn, data)
}

// acceptRegistration consumes a registration request and confirms it
func (v *mockValidator) acceptRegistration() error {
	msg, err := v.recv()
	if err != nil {
		return err
	}
	registerReq, ok := msg.(*MsgRegisterRequest)
	if !ok {
		return fmt.Errorf("expected registration request, got type %d", msg.Type())
	}
	if registerReq.Family != "alica_messages" {
		return fmt.Errorf("unexpected family in registration: %s", registerReq.Family)
	}
	if len(registerReq.Namespaces) != 1 || len(registerReq.Namespaces[0]) != 6 {
		return fmt.Errorf("unexpected namespaces in registration: %v", registerReq.Namespaces)
	}
	return v.send(NewMsgRegisterResponse(registerReq.Correlation(), true, ""))
}

func startTestProcessor(t *testing.T, script func(*mockValidator) error) (*Processor, *mockValidator) {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	v := newMockValidator(serverConn, script)
	p, err := New(
		WithConnection(clientConn),
		WithHandler(testHandler()),
		WithLogger(testLogger()),
	)
	if err != nil {
		t.Fatalf("unexpected error creating processor: %s", err)
	}
	return p, v
}

func finishTest(t *testing.T, p *Processor, v *mockValidator) {
	t.Helper()
	if err := <-v.Done; err != nil {
		t.Fatalf("mock validator error: %s", err)
	}
	p.Stop()
	v.conn.Close()
	for err := range p.ErrorChan() {
		t.Fatalf("unexpected processor error: %s", err)
	}
}

func TestStartRegistersFamily(t *testing.T) {
	defer goleak.VerifyNone(t)
	p, v := startTestProcessor(t, func(v *mockValidator) error {
		return v.acceptRegistration()
	})
	if err := p.Start(); err != nil {
		t.Fatalf("unexpected error starting processor: %s", err)
	}
	finishTest(t, p, v)
}

func TestStartFailsWhenRegistrationRefused(t *testing.T) {
	defer goleak.VerifyNone(t)
	p, v := startTestProcessor(t, func(v *mockValidator) error {
		msg, err := v.recv()
		if err != nil {
			return err
		}
		return v.send(NewMsgRegisterResponse(msg.Correlation(), false, "family version not supported"))
	})
	err := p.Start()
	if !errors.Is(err, ErrRegistrationRefused) {
		t.Fatalf("unexpected error: %v", err)
	}
	if scriptErr := <-v.Done; scriptErr != nil {
		t.Fatalf("mock validator error: %s", scriptErr)
	}
	v.conn.Close()
}

func TestProcessRequestCommitsValidTransaction(t *testing.T) {
	defer goleak.VerifyNone(t)

	family := handler.NewTransactionFamily("alica_messages", []string{"0.1.0"})
	expectedAddress := family.StateAddress(&payload.TransactionPayload{
		AgentId:     "agent-1",
		MessageType: "ALICA_ENGINE_INFO",
		Timestamp:   1690000000,
	})
	payloadBytes := fmt.Appendf(nil, "agent-1|ALICA_ENGINE_INFO|%s|1690000000", validEngineInfoJson)

	p, v := startTestProcessor(t, func(v *mockValidator) error {
		if err := v.acceptRegistration(); err != nil {
			return err
		}
		if err := v.send(NewMsgProcessRequest("tx-1", "980490840984984", payloadBytes)); err != nil {
			return err
		}
		// State get for the derived address, reporting no existing entries
		msg, err := v.recv()
		if err != nil {
			return err
		}
		getReq, ok := msg.(*MsgStateGetRequest)
		if !ok {
			return fmt.Errorf("expected state get request, got type %d", msg.Type())
		}
		if len(getReq.Addresses) != 1 || getReq.Addresses[0] != expectedAddress {
			return fmt.Errorf("unexpected addresses in state get: %v", getReq.Addresses)
		}
		if err := v.send(NewMsgStateGetResponse(getReq.Correlation(), nil)); err != nil {
			return err
		}
		// State set with the message bytes at the derived address
		msg, err = v.recv()
		if err != nil {
			return err
		}
		setReq, ok := msg.(*MsgStateSetRequest)
		if !ok {
			return fmt.Errorf("expected state set request, got type %d", msg.Type())
		}
		if len(setReq.Entries) != 1 {
			return fmt.Errorf("unexpected entry count in state set: %d", len(setReq.Entries))
		}
		if setReq.Entries[0].Address != expectedAddress {
			return fmt.Errorf("unexpected address in state set: %s", setReq.Entries[0].Address)
		}
		if string(setReq.Entries[0].Data) != validEngineInfoJson {
			return fmt.Errorf("unexpected data in state set: %q", setReq.Entries[0].Data)
		}
		if err := v.send(NewMsgStateSetResponse(setReq.Correlation(), true, "")); err != nil {
			return err
		}
		// Commit event
		msg, err = v.recv()
		if err != nil {
			return err
		}
		eventReq, ok := msg.(*MsgEventAddRequest)
		if !ok {
			return fmt.Errorf("expected event add request, got type %d", msg.Type())
		}
		if eventReq.EventType != "alica_messages/commit" {
			return fmt.Errorf("unexpected event type: %s", eventReq.EventType)
		}
		if err := v.send(NewMsgEventAddResponse(eventReq.Correlation(), true, "")); err != nil {
			return err
		}
		// Receipt digest
		msg, err = v.recv()
		if err != nil {
			return err
		}
		receiptReq, ok := msg.(*MsgReceiptAddRequest)
		if !ok {
			return fmt.Errorf("expected receipt add request, got type %d", msg.Type())
		}
		if len(receiptReq.Data) != 32 {
			return fmt.Errorf("unexpected receipt digest length: %d", len(receiptReq.Data))
		}
		if err := v.send(NewMsgReceiptAddResponse(receiptReq.Correlation(), true, "")); err != nil {
			return err
		}
		// Final verdict
		msg, err = v.recv()
		if err != nil {
			return err
		}
		processResp, ok := msg.(*MsgProcessResponse)
		if !ok {
			return fmt.Errorf("expected process response, got type %d", msg.Type())
		}
		if processResp.Correlation() != "tx-1" {
			return fmt.Errorf("unexpected correlation ID: %s", processResp.Correlation())
		}
		if processResp.Status != StatusOk {
			return fmt.Errorf("unexpected status: %d (%s)", processResp.Status, processResp.Message)
		}
		return nil
	})
	if err := p.Start(); err != nil {
		t.Fatalf("unexpected error starting processor: %s", err)
	}
	finishTest(t, p, v)
}

func TestProcessRequestRejectsUnknownMessageTypeWithoutStateAccess(t *testing.T) {
	defer goleak.VerifyNone(t)
	p, v := startTestProcessor(t, func(v *mockValidator) error {
		if err := v.acceptRegistration(); err != nil {
			return err
		}
		if err := v.send(NewMsgProcessRequest("tx-2", "key", []byte("id|type|msg|64984494984"))); err != nil {
			return err
		}
		// The very next message must be the rejection: no state access for
		// an unknown message type
		msg, err := v.recv()
		if err != nil {
			return err
		}
		processResp, ok := msg.(*MsgProcessResponse)
		if !ok {
			return fmt.Errorf("expected process response, got type %d", msg.Type())
		}
		if processResp.Status != StatusInvalidTransaction {
			return fmt.Errorf("unexpected status: %d", processResp.Status)
		}
		if processResp.Message == "" {
			return fmt.Errorf("expected rejection reason, got none")
		}
		return nil
	})
	if err := p.Start(); err != nil {
		t.Fatalf("unexpected error starting processor: %s", err)
	}
	finishTest(t, p, v)
}

func TestProcessRequestReportsStoreFailureAsInternalError(t *testing.T) {
	defer goleak.VerifyNone(t)
	payloadBytes := fmt.Appendf(nil, "agent-1|ALICA_ENGINE_INFO|%s|1690000001", validEngineInfoJson)
	p, v := startTestProcessor(t, func(v *mockValidator) error {
		if err := v.acceptRegistration(); err != nil {
			return err
		}
		if err := v.send(NewMsgProcessRequest("tx-3", "key", payloadBytes)); err != nil {
			return err
		}
		msg, err := v.recv()
		if err != nil {
			return err
		}
		getReq, ok := msg.(*MsgStateGetRequest)
		if !ok {
			return fmt.Errorf("expected state get request, got type %d", msg.Type())
		}
		if err := v.send(NewMsgStateGetResponse(getReq.Correlation(), nil)); err != nil {
			return err
		}
		msg, err = v.recv()
		if err != nil {
			return err
		}
		setReq, ok := msg.(*MsgStateSetRequest)
		if !ok {
			return fmt.Errorf("expected state set request, got type %d", msg.Type())
		}
		if err := v.send(NewMsgStateSetResponse(setReq.Correlation(), false, "storage unavailable")); err != nil {
			return err
		}
		msg, err = v.recv()
		if err != nil {
			return err
		}
		processResp, ok := msg.(*MsgProcessResponse)
		if !ok {
			return fmt.Errorf("expected process response, got type %d", msg.Type())
		}
		if processResp.Status != StatusInternalError {
			return fmt.Errorf("unexpected status: %d (%s)", processResp.Status, processResp.Message)
		}
		return nil
	})
	if err := p.Start(); err != nil {
		t.Fatalf("unexpected error starting processor: %s", err)
	}
	finishTest(t, p, v)
}

func TestPingIsAnswered(t *testing.T) {
	defer goleak.VerifyNone(t)
	p, v := startTestProcessor(t, func(v *mockValidator) error {
		if err := v.acceptRegistration(); err != nil {
			return err
		}
		if err := v.send(NewMsgPingRequest("ping-1")); err != nil {
			return err
		}
		msg, err := v.recv()
		if err != nil {
			return err
		}
		if _, ok := msg.(*MsgPingResponse); !ok {
			return fmt.Errorf("expected ping response, got type %d", msg.Type())
		}
		if msg.Correlation() != "ping-1" {
			return fmt.Errorf("unexpected correlation ID: %s", msg.Correlation())
		}
		return nil
	})
	if err := p.Start(); err != nil {
		t.Fatalf("unexpected error starting processor: %s", err)
	}
	finishTest(t, p, v)
}

func TestSendErrorDuringStopDoesNotPanic(t *testing.T) {
	defer goleak.VerifyNone(t)
	// Errors raced against shutdown must either be delivered or dropped,
	// never sent to a closed channel
	for i := 0; i < 100; i++ {
		clientConn, serverConn := net.Pipe()
		p, err := New(
			WithConnection(clientConn),
			WithHandler(testHandler()),
			WithLogger(testLogger()),
		)
		if err != nil {
			t.Fatalf("unexpected error creating processor: %s", err)
		}
		var wg sync.WaitGroup
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.sendError(errors.New("connection reset"))
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Stop()
		}()
		wg.Wait()
		for range p.ErrorChan() {
		}
		serverConn.Close()
	}
}

func TestNewRequiresHandlerAndConnection(t *testing.T) {
	if _, err := New(WithDialAddress("localhost:4004")); !errors.Is(err, ErrNoHandler) {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New(WithHandler(testHandler())); !errors.Is(err, ErrNoConnectionSource) {
		t.Fatalf("unexpected error: %v", err)
	}
}
