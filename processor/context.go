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

	"github.com/dasys-lab/alica-messages-tp/state"
)

// validatorContext implements state.Context against the validator
// connection: every state operation becomes a request/response exchange on
// the wire.
type validatorContext struct {
	processor *Processor
}

func (c *validatorContext) GetState(addresses []string) ([]state.Entry, error) {
	msg := NewMsgStateGetRequest(c.processor.nextCorrelation(), addresses)
	resp, err := c.processor.call(msg)
	if err != nil {
		return nil, err
	}
	getResp, ok := resp.(*MsgStateGetResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %d to state get", resp.Type())
	}
	entries := make([]state.Entry, 0, len(getResp.Entries))
	for _, entry := range getResp.Entries {
		entries = append(entries, state.Entry{
			Address: entry.Address,
			Data:    entry.Data,
		})
	}
	return entries, nil
}

func (c *validatorContext) SetState(entries []state.Entry) error {
	wireEntries := make([]StateEntry, 0, len(entries))
	for _, entry := range entries {
		wireEntries = append(wireEntries, StateEntry{
			Address: entry.Address,
			Data:    entry.Data,
		})
	}
	msg := NewMsgStateSetRequest(c.processor.nextCorrelation(), wireEntries)
	resp, err := c.processor.call(msg)
	if err != nil {
		return err
	}
	setResp, ok := resp.(*MsgStateSetResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %d to state set", resp.Type())
	}
	if !setResp.Ok {
		return errors.New(setResp.Reason)
	}
	return nil
}

func (c *validatorContext) AddEvent(
	eventType string,
	attributes []state.EventAttribute,
	data []byte,
) error {
	wireAttributes := make([]EventAttribute, 0, len(attributes))
	for _, attribute := range attributes {
		wireAttributes = append(wireAttributes, EventAttribute{
			Key:   attribute.Key,
			Value: attribute.Value,
		})
	}
	msg := NewMsgEventAddRequest(
		c.processor.nextCorrelation(),
		eventType,
		wireAttributes,
		data,
	)
	resp, err := c.processor.call(msg)
	if err != nil {
		return err
	}
	eventResp, ok := resp.(*MsgEventAddResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %d to event add", resp.Type())
	}
	if !eventResp.Ok {
		return errors.New(eventResp.Reason)
	}
	return nil
}

func (c *validatorContext) AddReceiptData(data []byte) error {
	msg := NewMsgReceiptAddRequest(c.processor.nextCorrelation(), data)
	resp, err := c.processor.call(msg)
	if err != nil {
		return err
	}
	receiptResp, ok := resp.(*MsgReceiptAddResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %d to receipt add", resp.Type())
	}
	if !receiptResp.Ok {
		return errors.New(receiptResp.Reason)
	}
	return nil
}
