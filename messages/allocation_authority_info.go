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

// AllocationAuthorityInfoValidator checks task allocation authority
// messages.
//
// Fields, in check order: senderId (id), planId (int64), parentState (int64),
// planType (int64), authority (id), entrypointRobots (list of
// entry point robot)
type AllocationAuthorityInfoValidator struct {
	id              *IdValidator
	entryPointRobot *EntryPointRobotValidator
}

func NewAllocationAuthorityInfoValidator() *AllocationAuthorityInfoValidator {
	return &AllocationAuthorityInfoValidator{
		id:              NewIdValidator(),
		entryPointRobot: NewEntryPointRobotValidator(),
	}
}

func (v *AllocationAuthorityInfoValidator) Validate(message []byte) error {
	obj, err := decodeObject(message)
	if err != nil {
		return err
	}
	return v.validateObject(obj)
}

func (v *AllocationAuthorityInfoValidator) validateObject(obj map[string]any) error {
	if err := requireObject(obj, "senderId", v.id); err != nil {
		return err
	}
	for _, field := range []string{"planId", "parentState", "planType"} {
		if err := requireInt(obj, field); err != nil {
			return err
		}
	}
	if err := requireObject(obj, "authority", v.id); err != nil {
		return err
	}
	return requireObjectList(obj, "entrypointRobots", v.entryPointRobot)
}
