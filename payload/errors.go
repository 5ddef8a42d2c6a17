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

package payload

import (
	"errors"
)

// Parse errors are purely structural. They always reject the transaction and
// are never retried.
var (
	// ErrNotUtf8 is returned when the payload bytes are not valid UTF-8 text
	ErrNotUtf8 = errors.New("payload is not valid UTF-8")

	// ErrWrongPartCount is returned when the payload does not split into the
	// expected number of pipe-separated parts
	ErrWrongPartCount = errors.New("payload does not have the expected part count")

	// ErrInvalidTimestamp is returned when the timestamp part is not an
	// unsigned 64-bit base-10 integer
	ErrInvalidTimestamp = errors.New("payload contains an invalid timestamp")
)
