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

// Package handler implements the transaction handler for the alica_messages
// transaction family: it parses submitted payloads, validates the embedded
// ALICA message against its schema, derives the state address and performs
// the create-once commit against ledger state.
package handler

import (
	"fmt"
	"log/slog"

	"github.com/dasys-lab/alica-messages-tp/messages"
	"github.com/dasys-lab/alica-messages-tp/payload"
	"github.com/dasys-lab/alica-messages-tp/state"
	"golang.org/x/crypto/blake2b"
)

// commitEventSuffix names the event emitted after every successful commit,
// scoped under the family name
const commitEventSuffix = "/commit"

// Transaction is a single process request as delivered by the validator
type Transaction struct {
	SignerPublicKey string
	PayloadBytes    []byte
}

// Handler decides the fate of submitted alica_messages transactions. It
// holds no per-transaction state and may be shared across invocations.
type Handler struct {
	family   *TransactionFamily
	format   payload.Format
	registry *messages.Registry
	logger   *slog.Logger
}

func NewHandler(
	family *TransactionFamily,
	format payload.Format,
	registry *messages.Registry,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		family:   family,
		format:   format,
		registry: registry,
		logger:   logger,
	}
}

func (h *Handler) FamilyName() string {
	return h.family.Name
}

func (h *Handler) FamilyVersions() []string {
	return h.family.Versions
}

// Namespaces returns the state address prefixes this handler owns
func (h *Handler) Namespaces() []string {
	return []string{h.family.Namespace()}
}

// Apply runs one transaction through parse, schema validation, addressing
// and the create-once commit. Every stage fails fast; nothing is retried and
// at most one state entry is ever written. A nil return means the message
// was committed.
func (h *Handler) Apply(tx *Transaction, ctx state.Context) error {
	h.logger.Debug(
		"transaction received",
		"signer", signerPrefix(tx.SignerPublicKey),
	)
	p, err := h.format.Deserialize(tx.PayloadBytes)
	if err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if err := h.registry.Validate(p.MessageType, p.MessageBytes); err != nil {
		return fmt.Errorf("validate %s message: %w", p.MessageType, err)
	}
	address := h.family.StateAddress(p)
	h.logger.Debug(
		"creating state entry",
		"address", address,
		"messageType", p.MessageType,
	)
	if err := NewStateCreator(ctx).CreateAt(p.MessageBytes, address); err != nil {
		return err
	}
	return h.recordCommit(ctx, p, address)
}

// recordCommit emits the commit event and receipt digest. The state entry is
// already written at this point; failures here surface as store errors.
func (h *Handler) recordCommit(
	ctx state.Context,
	p *payload.TransactionPayload,
	address string,
) error {
	attributes := []state.EventAttribute{
		{Key: "address", Value: address},
		{Key: "agent_id", Value: p.AgentId},
	}
	if err := ctx.AddEvent(h.family.Name+commitEventSuffix, attributes, nil); err != nil {
		return StoreError{Op: "add event", Err: err}
	}
	digest := blake2b.Sum256(p.MessageBytes)
	if err := ctx.AddReceiptData(digest[:]); err != nil {
		return StoreError{Op: "add receipt data", Err: err}
	}
	return nil
}

func signerPrefix(signerPublicKey string) string {
	if len(signerPublicKey) < 6 {
		return signerPublicKey
	}
	return signerPublicKey[:6]
}
