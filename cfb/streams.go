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

// EntrySlice returns the full contents of a stream entry. Entries
// smaller than the Reader's minimum standard stream size are held in
// the mini-stream and resolved through the SSAT against the root
// storage's ministream bytes; everything else is resolved through the
// regular SAT against the file body.
func (r *Reader) EntrySlice(e *Entry) ([]byte, error) {
	if e.Type == EntryRoot || e.Type == EntryStorage {
		return nil, ErrNodeType
	}
	if e.Size == 0 {
		return nil, ErrEmptyEntry
	}

	var buf []byte
	var err error
	if e.Size < uint64(r.minStdStreamSize) {
		var ids []uint32
		ids, err = chainSectorIDs(r.ssat, e.sectorStart)
		if err != nil {
			return nil, err
		}
		buf, err = chainBytes(r.miniStream, r.miniSectorSize, ids)
	} else {
		var ids []uint32
		ids, err = chainSectorIDs(r.sat, e.sectorStart)
		if err != nil {
			return nil, err
		}
		buf, err = chainBytes(r.body, r.sectorSize, ids)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(buf)) < e.Size {
		return nil, ErrBadDirectory
	}
	return buf[:e.Size], nil
}
