package msgparser

import (
	"strconv"
	"strings"

	"github.com/cfbmsg/msgparser/cfb"
)

// StorageKind classifies a directory storage as the root entry or one
// of the numbered recipient/attachment sub-storages (MS-OXPROPS 1.3.3).
type StorageKind int

const (
	KindUnknown StorageKind = iota
	KindRoot
	KindRecipient
	KindAttachment
)

// Storage pairs a StorageKind with its index for Recipient/Attachment
// (meaningless for Root/Unknown).
type Storage struct {
	Kind  StorageKind
	Index uint32
}

const (
	recipientPrefix  = "__recip_version1.0_#"
	attachmentPrefix = "__attach_version1.0_#"
)

// classifyStorage resolves the Open Question flagged in the storage
// classifier's design note: the 8 hex digits after '#' are parsed
// MSB-first, not via the original's byte-reversed multiply (which is a
// no-op for the small ids Outlook actually produces).
func classifyStorage(name string) (Storage, bool) {
	switch {
	case strings.HasPrefix(name, recipientPrefix):
		id, ok := hexID(name[len(recipientPrefix):])
		return Storage{Kind: KindRecipient, Index: id}, ok
	case strings.HasPrefix(name, attachmentPrefix):
		id, ok := hexID(name[len(attachmentPrefix):])
		return Storage{Kind: KindAttachment, Index: id}, ok
	default:
		return Storage{}, false
	}
}

func hexID(s string) (uint32, bool) {
	if len(s) != 8 {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// storageMap maps a storage's directory entry (the root, or a
// recipient/attachment sub-storage) to its Storage classification.
type storageMap map[*cfb.Entry]Storage

// buildStorageMap classifies the root and every UserStorage entry.
// Streams look up their immediate parent in this map to learn which
// bucket (root/recipient/attachment) they feed.
func buildStorageMap(doc *cfb.Reader) storageMap {
	m := make(storageMap)
	m[doc.Root] = Storage{Kind: KindRoot}
	for _, e := range doc.Entries {
		if !e.IsDir() || e.Type == cfb.EntryRoot {
			continue
		}
		if s, ok := classifyStorage(e.Name); ok {
			m[e] = s
		}
	}
	return m
}

// Storages buckets every storage's decoded Properties by kind:
// the message's own root properties plus its numbered recipient and
// attachment sub-storages, each indexed the way the Storage id names it.
type Storages struct {
	Root        Properties
	Recipients  []Properties
	Attachments []Properties
}

// buildStorages walks every directory storage in doc, classifies it via
// buildStorageMap, decodes its immediate __substg1.0_ streams into a
// Properties bag, and buckets the result by kind. Recipients and
// attachments are returned sorted by their numeric index: a gap in the
// numbering (an index skipped by Outlook) leaves an empty, non-nil
// Properties in that slot (see toPropertiesSlice).
func buildStorages(doc *cfb.Reader) *Storages {
	classes := buildStorageMap(doc)

	recipByIdx := make(map[uint32]Properties)
	attachByIdx := make(map[uint32]Properties)
	var root Properties
	var maxRecip, maxAttach uint32

	entries := append([]*cfb.Entry{doc.Root}, doc.Entries...)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		s, ok := classes[e]
		if !ok {
			continue
		}
		props := readProperties(doc, e)
		switch s.Kind {
		case KindRoot:
			root = props
		case KindRecipient:
			recipByIdx[s.Index] = props
			if s.Index+1 > maxRecip {
				maxRecip = s.Index + 1
			}
		case KindAttachment:
			attachByIdx[s.Index] = props
			if s.Index+1 > maxAttach {
				maxAttach = s.Index + 1
			}
		}
	}

	return &Storages{
		Root:        root,
		Recipients:  toPropertiesSlice(recipByIdx, maxRecip),
		Attachments: toPropertiesSlice(attachByIdx, maxAttach),
	}
}

// toPropertiesSlice fills index gaps with an empty Properties rather than
// densely packing the sorted result the way the original's to_arr does.
// Behaviorally identical for the contiguous 0-based numbering Outlook
// always emits; kept simpler on purpose rather than matched exactly.
func toPropertiesSlice(byIdx map[uint32]Properties, n uint32) []Properties {
	out := make([]Properties, n)
	for i := range out {
		if p, ok := byIdx[uint32(i)]; ok {
			out[i] = p
		} else {
			out[i] = Properties{}
		}
	}
	return out
}

// getOr returns props[key].String(), or def if key is absent.
func getOr(props Properties, key, def string) string {
	if v, ok := props[key]; ok {
		return v.String()
	}
	return def
}
