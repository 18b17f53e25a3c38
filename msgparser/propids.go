package msgparser

import "sync"

// propIDNames maps the 4-hex-digit property id half of a
// __substg1.0_<PropID><Type> stream name to its MS-OXPROPS canonical
// name. Built once, lazily, at first use; read-only thereafter.
var (
	propIDNamesOnce sync.Once
	propIDNames     map[string]string
)

func initPropIDNames() {
	propIDNames = map[string]string{
		// spec.md's named set
		"0C1A": "SenderName",
		"3001": "DisplayName",
		"3704": "AttachFilename",
		"007D": "TransportMessageHeaders",
		"1000": "Body",
		"1009": "RtfCompressed",
		"39FE": "SmtpAddress",
		"3003": "EmailAddress",
		"5D01": "SenderSmtpAddress",
		"0C1F": "SenderEmailAddress",
		"0E02": "DisplayBcc",
		"0E03": "DisplayCc",
		"0037": "Subject",
		"3701": "AttachDataObject",
		"3703": "AttachExtension",
		"370E": "AttachMimeTag",

		// supplemented entries
		"001A": "MessageClass",
		"0039": "ClientSubmitTime",
		"0E06": "MessageDeliveryTime",
		"0042": "SentRepresentingName",
		"0065": "SentRepresentingEmailAddress",
		"1035": "InternetMessageId",
		"0070": "ConversationTopic",
		"0017": "Importance",
		"0036": "Sensitivity",
		"3712": "AttachContentId",
		"0E20": "AttachSize",
		"0C15": "RecipientType",
	}
}

// canonicalPropName looks up the canonical MS-OXPROPS name for a bare
// 4-hex-digit property id. A miss returns ("", false): the caller
// discards the stream rather than treating it as an error.
func canonicalPropName(propID string) (string, bool) {
	propIDNamesOnce.Do(initPropIDNames)
	name, ok := propIDNames[propID]
	return name, ok
}
