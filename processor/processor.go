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

// Package processor connects a transaction handler to a ledger validator.
// It registers the transaction family, receives process requests, runs them
// through the handler against validator-backed state and reports each
// transaction's fate back. Transactions are processed one at a time, in the
// order the validator delivers them.
package processor

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dasys-lab/alica-messages-tp/cbor"
	"github.com/dasys-lab/alica-messages-tp/handler"
)

var (
	ErrShuttingDown        = errors.New("processor is shutting down")
	ErrNoHandler           = errors.New("no transaction handler configured")
	ErrNoConnectionSource  = errors.New("no connection or dial address configured")
	ErrRegistrationRefused = errors.New("validator refused registration")
)

type Processor struct {
	conn        net.Conn
	dialAddress string
	handler     *handler.Handler
	logger      *slog.Logger

	errorChan   chan error
	errorMutex  sync.Mutex
	doneChan    chan struct{}
	processChan chan *MsgProcessRequest
	onceStop    sync.Once

	sendMutex      sync.Mutex
	pendingMutex   sync.Mutex
	pending        map[string]chan Message
	correlationSeq atomic.Uint64
}

type ProcessorOptionFunc func(*Processor)

// WithConnection specifies an existing connection to the validator. This
// takes precedence over WithDialAddress.
func WithConnection(conn net.Conn) ProcessorOptionFunc {
	return func(p *Processor) {
		p.conn = conn
	}
}

// WithDialAddress specifies a TCP address to connect to in address:port
// format
func WithDialAddress(address string) ProcessorOptionFunc {
	return func(p *Processor) {
		p.dialAddress = address
	}
}

// WithHandler specifies the transaction handler to register and dispatch to
func WithHandler(h *handler.Handler) ProcessorOptionFunc {
	return func(p *Processor) {
		p.handler = h
	}
}

// WithLogger specifies a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ProcessorOptionFunc {
	return func(p *Processor) {
		p.logger = logger
	}
}

func New(options ...ProcessorOptionFunc) (*Processor, error) {
	p := &Processor{
		errorChan:   make(chan error, 10),
		doneChan:    make(chan struct{}),
		processChan: make(chan *MsgProcessRequest, 10),
		pending:     map[string]chan Message{},
	}
	for _, option := range options {
		option(p)
	}
	if p.handler == nil {
		return nil, ErrNoHandler
	}
	if p.conn == nil && p.dialAddress == "" {
		return nil, ErrNoConnectionSource
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p, nil
}

// ErrorChan returns the async error channel. It is closed on shutdown.
func (p *Processor) ErrorChan() <-chan error {
	return p.errorChan
}

// Start connects to the validator (unless a connection was provided),
// starts the receive and process loops and registers the transaction
// family. It returns once registration is confirmed; processing continues
// in the background until Stop is called or the connection fails.
func (p *Processor) Start() error {
	if p.conn == nil {
		conn, err := net.Dial("tcp", p.dialAddress)
		if err != nil {
			return fmt.Errorf("connect to validator: %w", err)
		}
		p.conn = conn
	}
	go p.recvLoop()
	go p.processLoop()
	if err := p.register(); err != nil {
		p.Stop()
		return err
	}
	p.logger.Info(
		"transaction family registered",
		"family", p.handler.FamilyName(),
		"versions", p.handler.FamilyVersions(),
		"namespaces", p.handler.Namespaces(),
	)
	return nil
}

// Stop shuts the processor down and closes the connection. It is safe to
// call more than once.
func (p *Processor) Stop() {
	p.onceStop.Do(func() {
		close(p.doneChan)
		if p.conn != nil {
			p.conn.Close()
		}
		// doneChan is closed before errorChan and both under the mutex, so
		// sendError can never write to a closed channel
		p.errorMutex.Lock()
		close(p.errorChan)
		p.errorMutex.Unlock()
	})
}

func (p *Processor) register() error {
	msg := NewMsgRegisterRequest(
		p.nextCorrelation(),
		p.handler.FamilyName(),
		p.handler.FamilyVersions(),
		p.handler.Namespaces(),
	)
	resp, err := p.call(msg)
	if err != nil {
		return err
	}
	registerResp, ok := resp.(*MsgRegisterResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %d to registration", resp.Type())
	}
	if !registerResp.Ok {
		return fmt.Errorf("%w: %s", ErrRegistrationRefused, registerResp.Reason)
	}
	return nil
}

func (p *Processor) nextCorrelation() string {
	return strconv.FormatUint(p.correlationSeq.Add(1), 10)
}

func (p *Processor) sendMessage(msg Message) error {
	data, err := cbor.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	p.sendMutex.Lock()
	defer p.sendMutex.Unlock()
	return writeFrame(p.conn, data)
}

// call sends a request and blocks until the matching response arrives or
// the processor shuts down
func (p *Processor) call(msg Message) (Message, error) {
	respChan := make(chan Message, 1)
	p.pendingMutex.Lock()
	p.pending[msg.Correlation()] = respChan
	p.pendingMutex.Unlock()
	defer func() {
		p.pendingMutex.Lock()
		delete(p.pending, msg.Correlation())
		p.pendingMutex.Unlock()
	}()
	if err := p.sendMessage(msg); err != nil {
		return nil, err
	}
	select {
	case resp := <-respChan:
		return resp, nil
	case <-p.doneChan:
		return nil, ErrShuttingDown
	}
}

func (p *Processor) sendError(err error) {
	p.errorMutex.Lock()
	select {
	case <-p.doneChan:
		// Already shutting down; drop the error
	default:
		p.errorChan <- err
	}
	p.errorMutex.Unlock()
	p.Stop()
}

func (p *Processor) recvLoop() {
	for {
		data, err := readFrame(p.conn)
		if err != nil {
			p.sendError(fmt.Errorf("read from validator: %w", err))
			return
		}
		msg, err := NewMsgFromCbor(data)
		if err != nil {
			p.sendError(err)
			return
		}
		switch m := msg.(type) {
		case *MsgProcessRequest:
			select {
			case p.processChan <- m:
			case <-p.doneChan:
				return
			}
		case *MsgPingRequest:
			if err := p.sendMessage(NewMsgPingResponse(m.Correlation())); err != nil {
				p.sendError(err)
				return
			}
		default:
			p.deliverResponse(msg)
		}
	}
}

// deliverResponse routes a response message to the call waiting on its
// correlation ID. Responses nobody is waiting for are dropped with a log
// entry; they are harmless after a local timeout-free shutdown race.
func (p *Processor) deliverResponse(msg Message) {
	p.pendingMutex.Lock()
	respChan, ok := p.pending[msg.Correlation()]
	p.pendingMutex.Unlock()
	if !ok {
		p.logger.Warn(
			"dropping unexpected response",
			"messageType", msg.Type(),
			"correlationId", msg.Correlation(),
		)
		return
	}
	respChan <- msg
}

func (p *Processor) processLoop() {
	for {
		select {
		case <-p.doneChan:
			return
		case msg := <-p.processChan:
			p.handleProcessRequest(msg)
		}
	}
}

func (p *Processor) handleProcessRequest(msg *MsgProcessRequest) {
	tx := &handler.Transaction{
		SignerPublicKey: msg.SignerPublicKey,
		PayloadBytes:    msg.Payload,
	}
	err := p.handler.Apply(tx, &validatorContext{processor: p})
	status, reason := statusForError(err)
	if err != nil {
		p.logger.Info(
			"transaction not applied",
			"status", status,
			"reason", reason,
		)
	}
	resp := NewMsgProcessResponse(msg.Correlation(), status, reason)
	if sendErr := p.sendMessage(resp); sendErr != nil {
		p.sendError(sendErr)
	}
}

// statusForError maps a handler outcome onto a wire status. Store failures
// mean the transaction's fate is unknown, not that it is invalid; everything
// else is a rejection of the transaction itself.
func statusForError(err error) (uint8, string) {
	switch {
	case err == nil:
		return StatusOk, ""
	case handler.IsStoreError(err):
		return StatusInternalError, err.Error()
	default:
		return StatusInvalidTransaction, err.Error()
	}
}
