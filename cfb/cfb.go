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

// Package cfb implements a reader for Microsoft's Compound File Binary
// File Format (MS-CFB), the OLE2 container that Outlook .msg files are
// packaged in.
//
// Example:
//
//	f, _ := os.Open("sample.msg")
//	defer f.Close()
//	doc, err := cfb.New(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range doc.Entries {
//	    if e.Type == cfb.EntryStream {
//	        data, _ := doc.EntrySlice(e)
//	        fmt.Println(e.Name, len(data))
//	    }
//	}
package cfb

import "io"

// Reader gives read-only access to the storage/stream tree of a
// compound file. The whole file is held in memory; .msg files are
// small enough that streamed, seek-based access (as real filesystem
// drivers need) buys nothing here.
type Reader struct {
	UID [16]byte

	sectorSize       int
	miniSectorSize   int
	minStdStreamSize int

	sat        []uint32
	ssat       []uint32
	body       []byte
	miniStream []byte

	Root    *Entry
	Entries []*Entry
}

// New reads and validates a compound file and builds its directory
// tree. The returned Reader is immutable; there is no separate close
// step because nothing but memory is held open.
func New(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSize {
		return nil, ErrBadFileSize
	}

	h, err := parseHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}
	body := data[headerSize:]

	msat, err := buildMSAT(h, body)
	if err != nil {
		return nil, err
	}
	sat, err := buildSAT(msat, body, h.sectorSize)
	if err != nil {
		return nil, err
	}
	ssat, err := buildSSAT(h, sat, body)
	if err != nil {
		return nil, err
	}

	dirBytes, err := buildDirectoryBytes(h, sat, body)
	if err != nil {
		return nil, err
	}
	entries := parseDirectoryEntries(dirBytes)
	root, err := buildTree(entries)
	if err != nil {
		return nil, err
	}

	var miniStream []byte
	if root.Size > 0 {
		ids, err := chainSectorIDs(sat, root.sectorStart)
		if err != nil {
			return nil, err
		}
		miniStream, err = chainBytes(body, h.sectorSize, ids)
		if err != nil {
			return nil, err
		}
	}

	rdr := &Reader{
		UID:              h.uid,
		sectorSize:       h.sectorSize,
		miniSectorSize:   h.miniSectorSize,
		minStdStreamSize: h.minStdStreamSize,
		sat:              sat,
		ssat:             ssat,
		body:             body,
		miniStream:       miniStream,
		Root:             root,
	}
	rdr.Entries = flatten(root)
	return rdr, nil
}

// flatten returns every descendant of root, in tree (pre-order) order,
// excluding root itself.
func flatten(root *Entry) []*Entry {
	var out []*Entry
	var walk func(*Entry)
	walk = func(e *Entry) {
		for _, c := range e.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(root)
	return out
}
