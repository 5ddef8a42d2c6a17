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

package messages

// SyncReadyValidator checks transition synchronization readiness messages.
//
// Fields, in check order: senderId (id), syncTransitionId (int64)
type SyncReadyValidator struct {
	id *IdValidator
}

func NewSyncReadyValidator() *SyncReadyValidator {
	return &SyncReadyValidator{
		id: NewIdValidator(),
	}
}

func (v *SyncReadyValidator) Validate(message []byte) error {
	obj, err := decodeObject(message)
	if err != nil {
		return err
	}
	return v.validateObject(obj)
}

func (v *SyncReadyValidator) validateObject(obj map[string]any) error {
	if err := requireObject(obj, "senderId", v.id); err != nil {
		return err
	}
	return requireInt(obj, "syncTransitionId")
}

// syncDataValidator checks the sync data records nested in sync talk
// messages. It only appears nested and is never registered under its own
// tag.
//
// Fields, in check order: robotId (id), transitionId (int64),
// conditionHolds (bool), ack (bool)
type syncDataValidator struct {
	id *IdValidator
}

func (v *syncDataValidator) validateObject(obj map[string]any) error {
	if err := requireObject(obj, "robotId", v.id); err != nil {
		return err
	}
	if err := requireInt(obj, "transitionId"); err != nil {
		return err
	}
	if err := requireBool(obj, "conditionHolds"); err != nil {
		return err
	}
	return requireBool(obj, "ack")
}

// SyncTalkValidator checks transition synchronization negotiation messages.
//
// Fields, in check order: senderId (id), syncData (list of sync data)
type SyncTalkValidator struct {
	id       *IdValidator
	syncData *syncDataValidator
}

func NewSyncTalkValidator() *SyncTalkValidator {
	return &SyncTalkValidator{
		id:       NewIdValidator(),
		syncData: &syncDataValidator{id: NewIdValidator()},
	}
}

func (v *SyncTalkValidator) Validate(message []byte) error {
	obj, err := decodeObject(message)
	if err != nil {
		return err
	}
	return v.validateObject(obj)
}

func (v *SyncTalkValidator) validateObject(obj map[string]any) error {
	if err := requireObject(obj, "senderId", v.id); err != nil {
		return err
	}
	return requireObjectList(obj, "syncData", v.syncData)
}
