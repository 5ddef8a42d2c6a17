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

// IdValidator checks the capnzero agent identifier schema. It only appears
// nested inside other messages and is never registered under its own tag.
//
// Fields, in check order: type (int64), value (string)
type IdValidator struct{}

func NewIdValidator() *IdValidator {
	return &IdValidator{}
}

func (v *IdValidator) Validate(message []byte) error {
	obj, err := decodeObject(message)
	if err != nil {
		return err
	}
	return v.validateObject(obj)
}

func (v *IdValidator) validateObject(obj map[string]any) error {
	if err := requireInt(obj, "type"); err != nil {
		return err
	}
	return requireString(obj, "value")
}
