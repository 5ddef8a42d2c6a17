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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

// decodeObject decodes message bytes as a JSON object. Numbers are kept as
// json.Number so that 64-bit integer checks are exact. The message must be
// exactly one JSON value; trailing content is a decode failure.
func decodeObject(message []byte) (map[string]any, error) {
	if !utf8.Valid(message) {
		return nil, ErrNotUtf8
	}
	decoder := json.NewDecoder(bytes.NewReader(message))
	decoder.UseNumber()
	var root any
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotJson, err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content after document", ErrNotJson)
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, ErrRootNotObject
	}
	return obj, nil
}

// isInt64 reports whether the value is a JSON number representable as a
// 64-bit signed integer
func isInt64(value any) bool {
	num, ok := value.(json.Number)
	if !ok {
		return false
	}
	_, err := num.Int64()
	return err == nil
}

func requireString(obj map[string]any, field string) error {
	value, ok := obj[field]
	if !ok {
		return MissingFieldError{Field: field}
	}
	if _, ok := value.(string); !ok {
		return InvalidFieldTypeError{Field: field, Expected: "string"}
	}
	return nil
}

func requireInt(obj map[string]any, field string) error {
	value, ok := obj[field]
	if !ok {
		return MissingFieldError{Field: field}
	}
	if !isInt64(value) {
		return InvalidFieldTypeError{Field: field, Expected: "int64"}
	}
	return nil
}

func requireBool(obj map[string]any, field string) error {
	value, ok := obj[field]
	if !ok {
		return MissingFieldError{Field: field}
	}
	if _, ok := value.(bool); !ok {
		return InvalidFieldTypeError{Field: field, Expected: "bool"}
	}
	return nil
}

// requireIntList checks that the field is an array whose elements are all
// representable as 64-bit integers. A single bad element invalidates the
// whole field.
func requireIntList(obj map[string]any, field string) error {
	value, ok := obj[field]
	if !ok {
		return MissingFieldError{Field: field}
	}
	list, ok := value.([]any)
	if !ok {
		return InvalidFieldTypeError{Field: field, Expected: "list of int64"}
	}
	for _, item := range list {
		if !isInt64(item) {
			return InvalidFieldTypeError{Field: field, Expected: "list of int64"}
		}
	}
	return nil
}

// requireObject checks that the field is an object satisfying the nested
// validator's schema
func requireObject(obj map[string]any, field string, validator objectValidator) error {
	value, ok := obj[field]
	if !ok {
		return MissingFieldError{Field: field}
	}
	nested, ok := value.(map[string]any)
	if !ok {
		return InvalidFieldTypeError{Field: field, Expected: "object"}
	}
	if err := validator.validateObject(nested); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// requireObjectList checks that the field is an array whose elements each
// satisfy the nested validator's schema
func requireObjectList(obj map[string]any, field string, validator objectValidator) error {
	value, ok := obj[field]
	if !ok {
		return MissingFieldError{Field: field}
	}
	list, ok := value.([]any)
	if !ok {
		return InvalidFieldTypeError{Field: field, Expected: "list of objects"}
	}
	for _, item := range list {
		nested, ok := item.(map[string]any)
		if !ok {
			return InvalidFieldTypeError{Field: field, Expected: "list of objects"}
		}
		if err := validator.validateObject(nested); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}
