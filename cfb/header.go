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

// headerSize is the fixed size of the CFB header. It does not depend on
// the sector size the header itself declares: body sector addressing
// starts right after these 512 bytes, matching the version 3, 512-byte
// sector compound files that Outlook .msg files are packaged in.
const headerSize = 512

var (
	signature          = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	littleEndianMarker = [2]byte{0xFE, 0xFF}
	bigEndianMarker    = [2]byte{0xFF, 0xFE}
)

const (
	endOfChainSecID uint32 = 0xFFFFFFFE
	freeSecID       uint32 = 0xFFFFFFFF
)

// header holds the fields read straight out of the 512-byte CFB header.
// It only lives for the duration of Reader construction; the Reader
// itself keeps the derived sizes and tables, not this struct.
type header struct {
	uid [16]byte

	sectorSize       int // bytes, 1 << k
	miniSectorSize   int // bytes, 1 << k
	minStdStreamSize int // bytes, cutoff between SAT and SSAT resolution

	difatHead [109]uint32 // first 109 MSAT entries, read straight from the header
	msatNext  uint32      // SECID of the first additional MSAT sector (offset 68)
	numMSAT   uint32      // count of additional MSAT sectors (offset 72)

	ssatHead uint32 // SECID of the first SSAT (mini-FAT) sector (offset 60)

	dsatHead uint32 // SECID of the first directory sector (offset 48)
}

// parseHeader validates and decodes the first 512 bytes of a compound
// file. It never reads beyond b[:512].
func parseHeader(b []byte) (*header, error) {
	if len(b) < headerSize {
		return nil, ErrBadFileSize
	}
	if [8]byte(b[0:8]) != signature {
		return nil, ErrInvalidFile
	}

	switch [2]byte(b[28:30]) {
	case bigEndianMarker:
		return nil, ErrNotImplemented
	case littleEndianMarker:
	default:
		return nil, ErrInvalidFile
	}

	h := &header{}
	copy(h.uid[:], b[8:24])

	sectorShift := leUint16(b[30:32])
	if sectorShift >= 16 {
		return nil, &BadSizeError{Field: "sector size"}
	}
	h.sectorSize = 1 << sectorShift

	miniShift := leUint16(b[32:34])
	if miniShift >= 16 {
		return nil, &BadSizeError{Field: "mini sector size"}
	}
	h.miniSectorSize = 1 << miniShift

	h.dsatHead = leUint32(b[48:52])
	h.minStdStreamSize = int(leUint32(b[56:60]))
	if h.minStdStreamSize < 4096 {
		return nil, ErrInvalidFile
	}
	h.ssatHead = leUint32(b[60:64])
	h.msatNext = leUint32(b[68:72])
	h.numMSAT = leUint32(b[72:76])

	for i := 0; i < 109; i++ {
		off := 76 + i*4
		h.difatHead[i] = leUint32(b[off : off+4])
	}

	return h, nil
}
