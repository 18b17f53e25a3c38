// Copyright 2013 Richard Lehane. All rights reserved.
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

package cfb

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Reader construction. All of them abort
// the parse: a Reader is either fully built or not returned at all.
var (
	ErrInvalidFile    = errors.New("cfb: Invalid OLE File")
	ErrNotImplemented = errors.New("cfb: big-endian compound files are not supported")
	ErrEmptyMSAT      = errors.New("cfb: master sector allocation table is empty")
	ErrBadDirectory   = errors.New("cfb: sector is not used by the sector allocation table")
	ErrNodeType       = errors.New("cfb: unknown directory entry type")
	ErrBadRootSize    = errors.New("cfb: root storage has a bad size")
	ErrBadFileSize    = errors.New("cfb: file is too short to hold a compound file header")
)

// ErrEmptyEntry is returned by Reader.EntrySlice when asked for the
// contents of a zero-length entry.
var ErrEmptyEntry = errors.New("cfb: entry has no data")

// BadSizeError reports a sector-size or mini-sector-size exponent of 16
// or more in the header. A stream-size cutoff below 4096 is reported as
// ErrInvalidFile instead.
type BadSizeError struct {
	Field string
}

func (e *BadSizeError) Error() string {
	return fmt.Sprintf("cfb: bad size value: %s", e.Field)
}
