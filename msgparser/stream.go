package msgparser

import (
	"strings"

	"github.com/cfbmsg/msgparser/cfb"
)

// Properties is a decoded storage's property bag, keyed by canonical
// MS-OXPROPS name (e.g. "Subject", "AttachFilename").
type Properties map[string]Value

const substgPrefix = "__substg1.0_"

// extractIDAndType splits a "__substg1.0_<PropID><Type>" stream name
// into its 4-hex-digit property id and type code. The two halves are
// fixed-width and adjacent, with no separator between them.
func extractIDAndType(name string) (propID, typeCode string, ok bool) {
	rest := strings.TrimPrefix(name, substgPrefix)
	if rest == name || len(rest) != 8 {
		return "", "", false
	}
	return rest[:4], rest[4:], true
}

// readProperties decodes every __substg1.0_ stream directly under
// parent into a Properties bag. Streams with an unrecognized property
// id or type code, that fail to slice (e.g. a zero-length stream, which
// real .msg files carry for empty properties like an absent Bcc line),
// or that fail to decode, are silently discarded rather than failing
// the whole parse.
func readProperties(doc *cfb.Reader, parent *cfb.Entry) Properties {
	props := make(Properties)
	for _, child := range parent.Children {
		if child.Type != cfb.EntryStream {
			continue
		}
		propID, typeCode, ok := extractIDAndType(child.Name)
		if !ok {
			continue
		}
		name, ok := canonicalPropName(propID)
		if !ok {
			continue
		}
		buf, err := doc.EntrySlice(child)
		if err != nil {
			continue
		}
		val, err := Decode(buf, typeCode)
		if err != nil {
			continue
		}
		props[name] = val
	}
	return props
}
