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

import (
	"errors"
	"fmt"
)

var (
	// ErrNotUtf8 is returned when the message bytes are not valid UTF-8 text
	ErrNotUtf8 = errors.New("message is not valid UTF-8")

	// ErrNotJson is returned when the message bytes are not valid JSON
	ErrNotJson = errors.New("message is not valid JSON")

	// ErrRootNotObject is returned when the JSON root is not an object
	ErrRootNotObject = errors.New("message root is not a JSON object")
)

// UnknownMessageTypeError is returned when no validator is registered for a
// message type. Unknown message types are always rejected, never passed
// through.
type UnknownMessageTypeError struct {
	MessageType string
}

func (e UnknownMessageTypeError) Error() string {
	return fmt.Sprintf(
		"no matching message validator for %s available",
		e.MessageType,
	)
}

// MissingFieldError is returned when a required field is absent. Validation
// stops at the first missing or malformed field.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

// InvalidFieldTypeError is returned when a required field is present but has
// the wrong shape
type InvalidFieldTypeError struct {
	Field    string
	Expected string
}

func (e InvalidFieldTypeError) Error() string {
	return fmt.Sprintf(
		"field %s does not have expected type %s",
		e.Field,
		e.Expected,
	)
}
