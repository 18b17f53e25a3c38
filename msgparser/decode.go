package msgparser

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Value is a decoded MAPI property value. Every concrete type knows how
// to render itself as the flat string representation that record
// projection (outlook.go) and JSON output both use.
type Value interface {
	String() string
}

type (
	StringValue   string
	BinaryValue   []byte
	BoolValue     bool
	Int16Value    int16
	Int32Value    int32
	Int64Value    int64
	Float32Value  float32
	Float64Value  float64
	CurrencyValue int64
	TimeValue     time.Time
	GUIDValue     [16]byte

	MultiStringValue   []string
	MultiInt16Value    []int16
	MultiInt32Value    []int32
	MultiFloat32Value  []float32
	MultiFloat64Value  []float64
	MultiCurrencyValue []int64
	MultiTimeValue     []time.Time
	MultiGUIDValue     [][16]byte
)

func (v StringValue) String() string { return string(v) }
func (v BinaryValue) String() string { return hex.EncodeToString(v) }
func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v Int16Value) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int32Value) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int64Value) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Float32Value) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }
func (v Float64Value) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v CurrencyValue) String() string {
	whole, frac := int64(v)/10000, int64(v)%10000
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%04d", whole, frac)
}
func (v TimeValue) String() string { return time.Time(v).Format(time.RFC3339) }
func (v GUIDValue) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%04X-%012X",
		binary.LittleEndian.Uint32(v[0:4]),
		binary.LittleEndian.Uint16(v[4:6]),
		binary.LittleEndian.Uint16(v[6:8]),
		binary.BigEndian.Uint16(v[8:10]),
		v[10:16])
}

func joinString(n int, at func(int) string) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = at(i)
	}
	return strings.Join(parts, "; ")
}

func (v MultiStringValue) String() string { return joinString(len(v), func(i int) string { return v[i] }) }
func (v MultiInt16Value) String() string {
	return joinString(len(v), func(i int) string { return strconv.FormatInt(int64(v[i]), 10) })
}
func (v MultiInt32Value) String() string {
	return joinString(len(v), func(i int) string { return strconv.FormatInt(int64(v[i]), 10) })
}
func (v MultiFloat32Value) String() string {
	return joinString(len(v), func(i int) string { return strconv.FormatFloat(float64(v[i]), 'f', -1, 32) })
}
func (v MultiFloat64Value) String() string {
	return joinString(len(v), func(i int) string { return strconv.FormatFloat(float64(v[i]), 'f', -1, 64) })
}
func (v MultiCurrencyValue) String() string {
	return joinString(len(v), func(i int) string { return CurrencyValue(v[i]).String() })
}
func (v MultiTimeValue) String() string {
	return joinString(len(v), func(i int) string { return v[i].Format(time.RFC3339) })
}
func (v MultiGUIDValue) String() string {
	return joinString(len(v), func(i int) string { return GUIDValue(v[i]).String() })
}

// decoders maps a bare, upper-cased 4-hex-digit MS-OXCDATA type code
// (no "0x" prefix) to the function that turns a raw property stream
// into a Value.
var decoders = map[string]func([]byte) (Value, error){
	"001E": decodePtypString8,
	"001F": decodePtypString,
	"0102": decodePtypBinary,
	"000B": decodePtypBoolean,
	"0002": decodePtypInteger16,
	"0003": decodePtypInteger32,
	"0014": decodePtypInteger64,
	"0004": decodePtypFloating32,
	"0005": decodePtypFloating64,
	"0006": decodePtypCurrency,
	"0040": decodePtypTime,
	"0048": decodePtypGuid,
	"1002": decodeMultiInteger16,
	"1003": decodeMultiInteger32,
	"1004": decodeMultiFloating32,
	"1005": decodeMultiFloating64,
	"1006": decodeMultiCurrency,
	"101E": decodeMultiString8,
	"101F": decodeMultiString,
	"1040": decodeMultiTime,
	"1048": decodeMultiGuid,
}

// Decode turns the raw bytes of a property stream into a Value,
// dispatching on its 4-hex-digit type code. code may be given with or
// without a leading "0x"; an unrecognized code yields *UnknownCodeError.
func Decode(buf []byte, code string) (Value, error) {
	code = strings.ToUpper(strings.TrimPrefix(code, "0x"))
	fn, ok := decoders[code]
	if !ok {
		return nil, &UnknownCodeError{Code: code}
	}
	return fn(buf)
}

func decodePtypBinary(buf []byte) (Value, error) {
	return BinaryValue(append([]byte{}, buf...)), nil
}

var errInvalidSurrogate = errors.New("invalid utf-16 surrogate pair")

func decodeUTF16LE(buf []byte) (string, error) {
	units := make([]uint16, 0, len(buf)/2+1)
	for i := 0; i < len(buf); i += 2 {
		if i+1 < len(buf) {
			units = append(units, uint16(buf[i])|uint16(buf[i+1])<<8)
		} else {
			units = append(units, uint16(buf[i]))
		}
	}
	var sb strings.Builder
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return "", errInvalidSurrogate
			}
			sb.WriteRune(utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", errInvalidSurrogate
		default:
			sb.WriteRune(rune(u))
		}
	}
	return strings.TrimRight(sb.String(), "\x00"), nil
}

func decodePtypString(buf []byte) (Value, error) {
	s, err := decodeUTF16LE(buf)
	if err != nil {
		return nil, fmt.Errorf("msgparser: utf16 decode: %w", err)
	}
	return StringValue(s), nil
}

// decodePtypString8 decodes a single-byte "ANSI" MAPI string whose
// codepage isn't known up front: detect it, fall back to Windows-1252
// (the commonest Outlook default) if detection is inconclusive.
func decodePtypString8(buf []byte) (Value, error) {
	trimmed := bytes.TrimRight(buf, "\x00")

	det := chardet.NewTextDetector()
	if result, err := det.DetectBest(trimmed); err == nil && result != nil {
		if enc, _ := charset.Lookup(result.Charset); enc != nil {
			if decoded, _, err := transform.Bytes(enc.NewDecoder(), trimmed); err == nil {
				return StringValue(decoded), nil
			}
		}
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), trimmed)
	if err != nil {
		return StringValue(trimmed), nil
	}
	return StringValue(decoded), nil
}

func decodePtypBoolean(buf []byte) (Value, error) {
	if len(buf) < 2 {
		return BoolValue(false), nil
	}
	return BoolValue(binary.LittleEndian.Uint16(buf[:2]) != 0), nil
}

func decodePtypInteger16(buf []byte) (Value, error) {
	if len(buf) < 2 {
		return nil, fmt.Errorf("msgparser: short PtypInteger16 buffer")
	}
	return Int16Value(int16(binary.LittleEndian.Uint16(buf[:2]))), nil
}

func decodePtypInteger32(buf []byte) (Value, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("msgparser: short PtypInteger32 buffer")
	}
	return Int32Value(int32(binary.LittleEndian.Uint32(buf[:4]))), nil
}

func decodePtypInteger64(buf []byte) (Value, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("msgparser: short PtypInteger64 buffer")
	}
	return Int64Value(int64(binary.LittleEndian.Uint64(buf[:8]))), nil
}

func decodePtypFloating32(buf []byte) (Value, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("msgparser: short PtypFloating32 buffer")
	}
	return Float32Value(float32FromBits(binary.LittleEndian.Uint32(buf[:4]))), nil
}

func decodePtypFloating64(buf []byte) (Value, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("msgparser: short PtypFloating64 buffer")
	}
	return Float64Value(float64FromBits(binary.LittleEndian.Uint64(buf[:8]))), nil
}

func decodePtypCurrency(buf []byte) (Value, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("msgparser: short PtypCurrency buffer")
	}
	return CurrencyValue(int64(binary.LittleEndian.Uint64(buf[:8]))), nil
}

// filetimeEpochDiff is the number of 100ns intervals between the
// FILETIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const filetimeEpochDiff = 116444736000000000

func decodePtypTime(buf []byte) (Value, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("msgparser: short PtypTime buffer")
	}
	ft := binary.LittleEndian.Uint64(buf[:8])
	return TimeValue(time.Unix(0, (int64(ft)-filetimeEpochDiff)*100).UTC()), nil
}

func decodePtypGuid(buf []byte) (Value, error) {
	if len(buf) < 16 {
		return nil, fmt.Errorf("msgparser: short PtypGuid buffer")
	}
	var g GUIDValue
	copy(g[:], buf[:16])
	return g, nil
}

func decodeMultiInteger16(buf []byte) (Value, error) {
	out := make([]int16, len(buf)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	return MultiInt16Value(out), nil
}

func decodeMultiInteger32(buf []byte) (Value, error) {
	out := make([]int32, len(buf)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return MultiInt32Value(out), nil
}

func decodeMultiFloating32(buf []byte) (Value, error) {
	out := make([]float32, len(buf)/4)
	for i := range out {
		out[i] = float32FromBits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return MultiFloat32Value(out), nil
}

func decodeMultiFloating64(buf []byte) (Value, error) {
	out := make([]float64, len(buf)/8)
	for i := range out {
		out[i] = float64FromBits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return MultiFloat64Value(out), nil
}

func decodeMultiCurrency(buf []byte) (Value, error) {
	out := make([]int64, len(buf)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return MultiCurrencyValue(out), nil
}

func decodeMultiTime(buf []byte) (Value, error) {
	out := make([]time.Time, len(buf)/8)
	for i := range out {
		ft := binary.LittleEndian.Uint64(buf[i*8:])
		out[i] = time.Unix(0, (int64(ft)-filetimeEpochDiff)*100).UTC()
	}
	return MultiTimeValue(out), nil
}

func decodeMultiGuid(buf []byte) (Value, error) {
	out := make([][16]byte, len(buf)/16)
	for i := range out {
		copy(out[i][:], buf[i*16:i*16+16])
	}
	return MultiGUIDValue(out), nil
}

// decodeMultiString8/decodeMultiString handle the simplified case where
// a multi-valued string property has been packed into one stream as
// NUL-terminated runs, rather than the one-stream-per-index layout
// MS-OXMSG normally uses for variable-length multi-value properties.
func decodeMultiString8(buf []byte) (Value, error) {
	var out []string
	for _, part := range bytes.Split(buf, []byte{0}) {
		if len(part) == 0 {
			continue
		}
		v, err := decodePtypString8(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v.String())
	}
	return MultiStringValue(out), nil
}

func decodeMultiString(buf []byte) (Value, error) {
	var out []string
	for _, part := range splitUTF16NUL(buf) {
		s, err := decodeUTF16LE(part)
		if err != nil {
			return nil, fmt.Errorf("msgparser: utf16 decode: %w", err)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return MultiStringValue(out), nil
}

func splitUTF16NUL(buf []byte) [][]byte {
	var parts [][]byte
	start := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] == 0 && buf[i+1] == 0 {
			parts = append(parts, buf[start:i])
			start = i + 2
		}
	}
	if start < len(buf) {
		parts = append(parts, buf[start:])
	}
	return parts
}
