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

// EntryPointRobotValidator checks entry point robot records. These appear
// both as standalone messages and nested inside allocation authority info
// messages.
//
// Fields, in check order: entrypoint (int64), robots (list of id)
type EntryPointRobotValidator struct {
	id *IdValidator
}

func NewEntryPointRobotValidator() *EntryPointRobotValidator {
	return &EntryPointRobotValidator{
		id: NewIdValidator(),
	}
}

func (v *EntryPointRobotValidator) Validate(message []byte) error {
	obj, err := decodeObject(message)
	if err != nil {
		return err
	}
	return v.validateObject(obj)
}

func (v *EntryPointRobotValidator) validateObject(obj map[string]any) error {
	if err := requireInt(obj, "entrypoint"); err != nil {
		return err
	}
	return requireObjectList(obj, "robots", v.id)
}
