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

// Package messages implements schema validation for the ALICA messages
// embedded in transaction payloads. Each message type has a validator that
// checks a fixed list of required fields in a fixed order; validators for
// composite messages call the validators of their nested schemas.
package messages

// Message type tags as they appear in transaction payloads
const (
	TypeEngineInfo              = "ALICA_ENGINE_INFO"
	TypeAllocationAuthorityInfo = "ALLOCATION_AUTHORITY_INFO"
	TypeEntryPointRobot         = "ENTRY_POINT_ROBOT"
	TypePlanTreeInfo            = "PLAN_TREE_INFO"
	TypeRoleSwitch              = "ROLE_SWITCH"
	TypeSyncReady               = "SYNC_READY"
	TypeSyncTalk                = "SYNC_TALK"
)

// Validator checks that message bytes satisfy a single message schema.
// Validators hold no mutable state and are safe for concurrent use.
type Validator interface {
	Validate(message []byte) error
}

// objectValidator is implemented by validators that can also check an
// already-decoded JSON object. Composite validators use this to validate
// nested documents without re-encoding them.
type objectValidator interface {
	validateObject(obj map[string]any) error
}

// Registry maps message type tags to validators. It is populated explicitly
// at startup and read-only afterwards.
type Registry struct {
	validators map[string]Validator
}

func NewRegistry() *Registry {
	return &Registry{
		validators: map[string]Validator{},
	}
}

// NewDefaultRegistry returns a registry with validators for all known ALICA
// message types
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeEngineInfo, NewEngineInfoValidator())
	r.Register(TypeAllocationAuthorityInfo, NewAllocationAuthorityInfoValidator())
	r.Register(TypeEntryPointRobot, NewEntryPointRobotValidator())
	r.Register(TypePlanTreeInfo, NewPlanTreeInfoValidator())
	r.Register(TypeRoleSwitch, NewRoleSwitchValidator())
	r.Register(TypeSyncReady, NewSyncReadyValidator())
	r.Register(TypeSyncTalk, NewSyncTalkValidator())
	return r
}

// Register associates a message type tag with a validator, replacing any
// existing registration for the tag
func (r *Registry) Register(messageType string, validator Validator) {
	r.validators[messageType] = validator
}

// Lookup returns the validator registered for the given message type
func (r *Registry) Lookup(messageType string) (Validator, bool) {
	validator, ok := r.validators[messageType]
	return validator, ok
}

// Validate checks message bytes against the schema registered for the given
// message type. A missing registration is a hard failure.
func (r *Registry) Validate(messageType string, message []byte) error {
	validator, ok := r.Lookup(messageType)
	if !ok {
		return UnknownMessageTypeError{MessageType: messageType}
	}
	return validator.Validate(message)
}
