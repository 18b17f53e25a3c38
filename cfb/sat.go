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

// sector returns the body-relative bytes of sector id. body is the file
// content after the 512-byte header; sector 0 starts at body[0], with no
// further offset adjustment.
func sector(body []byte, sectorSize int, id uint32) ([]byte, error) {
	start := int(id) * sectorSize
	end := start + sectorSize
	if start < 0 || end > len(body) {
		return nil, ErrBadDirectory
	}
	return body[start:end], nil
}

// secIDs reinterprets a sector's bytes as a slice of little-endian SECIDs.
func secIDs(buf []byte) []uint32 {
	ids := make([]uint32, len(buf)/4)
	for i := range ids {
		ids[i] = leUint32(buf[i*4 : i*4+4])
	}
	return ids
}

// buildMSAT assembles the Master Sector Allocation Table: the list of
// sector IDs that hold the flat SAT. The first 109 entries live in the
// header itself; if the file needs more, each additional MSAT sector
// holds (sectorSize/4 - 1) more SAT sector IDs plus a trailing pointer
// to the next MSAT sector.
func buildMSAT(h *header, body []byte) ([]uint32, error) {
	msat := make([]uint32, 0, 109)
	for _, id := range h.difatHead {
		if id == freeSecID {
			continue
		}
		msat = append(msat, id)
	}
	if h.numMSAT == 0 {
		return msat, nil
	}

	maxSectors := len(body) / h.sectorSize
	next := h.msatNext
	seen := make(map[uint32]bool)
	for i := 0; i < int(h.numMSAT) && next != endOfChainSecID && next != freeSecID; i++ {
		if seen[next] || int(next) >= maxSectors {
			return nil, ErrBadDirectory
		}
		seen[next] = true
		buf, err := sector(body, h.sectorSize, next)
		if err != nil {
			return nil, err
		}
		ids := secIDs(buf)
		for _, id := range ids[:len(ids)-1] {
			if id != freeSecID {
				msat = append(msat, id)
			}
		}
		next = ids[len(ids)-1]
	}
	return msat, nil
}

// buildSAT reads every sector listed in the MSAT and concatenates their
// SECID entries into the flat Sector Allocation Table: sat[i] is the
// sector that follows sector i in whatever chain it belongs to.
func buildSAT(msat []uint32, body []byte, sectorSize int) ([]uint32, error) {
	if len(msat) == 0 {
		return nil, ErrEmptyMSAT
	}
	sat := make([]uint32, 0, len(msat)*sectorSize/4)
	for _, id := range msat {
		buf, err := sector(body, sectorSize, id)
		if err != nil {
			return nil, err
		}
		sat = append(sat, secIDs(buf)...)
	}
	return sat, nil
}

// chainSectorIDs walks the SAT starting at start, returning every sector
// ID visited in order, stopping at end-of-chain or an unallocated
// sector. A cycle or an out-of-range SECID is reported as ErrBadDirectory
// rather than looping forever.
func chainSectorIDs(sat []uint32, start uint32) ([]uint32, error) {
	if start == endOfChainSecID || start == freeSecID {
		return nil, nil
	}
	var ids []uint32
	seen := make(map[uint32]bool)
	cur := start
	for cur != endOfChainSecID && cur != freeSecID {
		if seen[cur] || int(cur) >= len(sat) {
			return nil, ErrBadDirectory
		}
		seen[cur] = true
		ids = append(ids, cur)
		cur = sat[cur]
	}
	return ids, nil
}

// chainBytes reads and concatenates the body-relative bytes of every
// sector in ids.
func chainBytes(body []byte, sectorSize int, ids []uint32) ([]byte, error) {
	buf := make([]byte, 0, len(ids)*sectorSize)
	for _, id := range ids {
		s, err := sector(body, sectorSize, id)
		if err != nil {
			return nil, err
		}
		buf = append(buf, s...)
	}
	return buf, nil
}

// buildSSAT assembles the Short (mini) Sector Allocation Table by
// walking the regular SAT chain that starts at the header's mini-FAT
// head and reinterpreting the sectors it visits as SECID entries, one
// per ministream sector.
func buildSSAT(h *header, sat []uint32, body []byte) ([]uint32, error) {
	ids, err := chainSectorIDs(sat, h.ssatHead)
	if err != nil {
		return nil, err
	}
	buf, err := chainBytes(body, h.sectorSize, ids)
	if err != nil {
		return nil, err
	}
	return secIDs(buf), nil
}

// buildDirectoryBytes walks the SAT chain that starts at the header's
// directory sector head and returns the concatenated raw bytes of every
// directory sector, ready to be sliced into 128-byte entries.
func buildDirectoryBytes(h *header, sat []uint32, body []byte) ([]byte, error) {
	ids, err := chainSectorIDs(sat, h.dsatHead)
	if err != nil {
		return nil, err
	}
	return chainBytes(body, h.sectorSize, ids)
}
