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

import "encoding/binary"

// Every integer field in a compound file header or directory entry is
// little-endian. These are thin wrappers over encoding/binary so the
// rest of the package never has to spell out the byte order at each
// call site.

func leUint16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

func leUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func leUint64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}
