package msgparser

import (
	"bytes"
	"testing"

	"github.com/cfbmsg/msgparser/cfb"
)

// buildMinimalMsgFile assembles a tiny compound file with a root storage
// holding two streams: a populated "Subject" property and a zero-length
// "DisplayBcc" property, the way a real .msg file carries an empty Bcc
// line. It exercises only the public cfb API plus literal byte layout,
// since cfb's sector-table internals aren't exported.
func buildMinimalMsgFile(t *testing.T, subject string) []byte {
	t.Helper()
	const sectorSize = 512
	const endOfChain = 0xFFFFFFFE
	const free = 0xFFFFFFFF
	const noStream = 0xFFFFFFFF

	putU16 := func(b []byte, off int, v uint16) {
		b[off], b[off+1] = byte(v), byte(v>>8)
	}
	putU32 := func(b []byte, off int, v uint32) {
		for i := 0; i < 4; i++ {
			b[off+i] = byte(v >> (8 * i))
		}
	}

	header := make([]byte, 512)
	copy(header[0:8], []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	copy(header[28:30], []byte{0xFE, 0xFF})
	putU16(header, 30, 9) // 512-byte sectors
	putU16(header, 32, 6) // 64-byte mini sectors
	putU32(header, 48, 1) // directory sector is body sector 1
	putU32(header, 56, 4096)
	putU32(header, 60, endOfChain)
	putU32(header, 68, endOfChain)
	for i := 0; i < 109; i++ {
		putU32(header, 76+i*4, free)
	}
	putU32(header, 76, 0) // SAT lives in body sector 0

	payload := make([]byte, 4096)
	copy(payload, utf16leBytes(subject))

	sat := make([]byte, sectorSize)
	entries := make([]uint32, sectorSize/4)
	for i := range entries {
		entries[i] = free
	}
	entries[1] = endOfChain // directory chain is one sector long
	for s := 2; s <= 8; s++ {
		entries[s] = uint32(s + 1)
	}
	entries[9] = endOfChain
	for i, v := range entries {
		putU32(sat, i*4, v)
	}

	dir := make([]byte, sectorSize)
	putEntry := func(idx int, name string, typ cfb.EntryType, left, right, child, start uint32, size uint64) {
		off := idx * 128
		var nameBuf []byte
		for _, r := range name {
			nameBuf = append(nameBuf, byte(r), 0)
		}
		nameBuf = append(nameBuf, 0, 0)
		copy(dir[off:off+64], nameBuf)
		dir[off+66] = byte(typ)
		putU32(dir, off+68, left)
		putU32(dir, off+72, right)
		putU32(dir, off+76, child)
		putU32(dir, off+116, start)
		for b := 0; b < 8; b++ {
			dir[off+120+b] = byte(size >> (8 * b))
		}
	}
	putEntry(0, "Root Entry", cfb.EntryRoot, noStream, noStream, 1, endOfChain, 0)
	putEntry(1, "__substg1.0_0037001F", cfb.EntryStream, noStream, 2, noStream, 2, uint64(len(payload)))
	putEntry(2, "__substg1.0_0E02001F", cfb.EntryStream, noStream, noStream, noStream, 0, 0)

	body := make([]byte, 0, sectorSize*10)
	body = append(body, sat...)
	body = append(body, dir...)
	body = append(body, payload...)

	return append(header, body...)
}

func TestParseToleratesEmptyRecognizedStream(t *testing.T) {
	data := buildMinimalMsgFile(t, "Hello")
	doc, err := cfb.New(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("cfb.New: %v", err)
	}

	o, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse returned an error for a file containing an empty recognized stream: %v", err)
	}
	if o.Subject != "Hello" {
		t.Fatalf("got subject %q", o.Subject)
	}
	if o.Bcc != "" {
		t.Fatalf("expected empty Bcc, got %q", o.Bcc)
	}
}
