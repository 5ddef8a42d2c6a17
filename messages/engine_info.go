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

// EngineInfoValidator checks ALICA engine info messages.
//
// Fields, in check order: senderId (id), masterPlan (string),
// currentPlan (string), currentState (string), currentRole (string),
// currentTask (string), agentIdsWithMe (list of id)
type EngineInfoValidator struct {
	id *IdValidator
}

func NewEngineInfoValidator() *EngineInfoValidator {
	return &EngineInfoValidator{
		id: NewIdValidator(),
	}
}

func (v *EngineInfoValidator) Validate(message []byte) error {
	obj, err := decodeObject(message)
	if err != nil {
		return err
	}
	return v.validateObject(obj)
}

func (v *EngineInfoValidator) validateObject(obj map[string]any) error {
	if err := requireObject(obj, "senderId", v.id); err != nil {
		return err
	}
	for _, field := range []string{
		"masterPlan",
		"currentPlan",
		"currentState",
		"currentRole",
		"currentTask",
	} {
		if err := requireString(obj, field); err != nil {
			return err
		}
	}
	return requireObjectList(obj, "agentIdsWithMe", v.id)
}
