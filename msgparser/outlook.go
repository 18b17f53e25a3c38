package msgparser

import (
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/cfbmsg/msgparser/cfb"
)

// TransportHeaders holds the envelope fields lifted out of the raw
// TransportMessageHeaders blob (an RFC 5322 header block), rather than
// out of any individual MAPI property.
type TransportHeaders struct {
	ContentType string
	Date        string
	MessageID   string
	ReplyTo     string
}

var (
	contentTypeRE = regexp.MustCompile(`(?i)Content-Type: (.*(\n\s.*)*)\r\n`)
	dateRE        = regexp.MustCompile(`(?i)Date: (.*(\n\s.*)*)\r\n`)
	messageIDRE   = regexp.MustCompile(`(?i)Message-ID: (.*(\n\s.*)*)\r\n`)
	replyToRE     = regexp.MustCompile(`(?i)Reply-To: (.*(\n\s.*)*)\r\n`)
	ccRE          = regexp.MustCompile(`(?i)CC: .*(\r\n\t)?.*\r\n`)
)

func extractHeaderField(text string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func newTransportHeaders(text string) TransportHeaders {
	return TransportHeaders{
		ContentType: extractHeaderField(text, contentTypeRE),
		Date:        extractHeaderField(text, dateRE),
		MessageID:   extractHeaderField(text, messageIDRE),
		ReplyTo:     extractHeaderField(text, replyToRE),
	}
}

// Person is a named mailbox: a sender, recipient, or Cc entry.
type Person struct {
	Name  string
	Email string
}

func personFromProps(props Properties, nameKey string, emailKeys ...string) Person {
	name := getOr(props, nameKey, "")
	var email string
	for _, key := range emailKeys {
		if v := getOr(props, key, ""); v != "" {
			email = v
			break
		}
	}
	return Person{Name: name, Email: email}
}

// extractCCFromHeaders parses the "CC: Name <email>, Name <email>\r\n"
// line out of a raw header block. Folded continuation lines ("\r\n\t")
// are swallowed by the same match.
func extractCCFromHeaders(headerText string) []Person {
	m := ccRE.FindString(headerText)
	if m == "" {
		return nil
	}
	rest := strings.TrimPrefix(m, "CC:")
	entries := strings.Split(rest, ",")

	var people []Person
	for _, entry := range entries {
		entry = strings.ReplaceAll(strings.TrimSpace(entry), ">", "")
		parts := strings.SplitN(entry, "<", 2)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 {
			people = append(people, Person{Name: parts[0]})
			continue
		}
		people = append(people, Person{
			Name:  strings.ReplaceAll(parts[0], `"`, ""),
			Email: parts[1],
		})
	}
	return people
}

// Attachment is one __attach_version1.0_#-numbered sub-storage's
// decoded properties, projected onto the fields a consumer cares about.
type Attachment struct {
	DisplayName string
	Payload     string
	Extension   string
	MimeTag     string
	FileName    string
	ContentID   string
	Size        string
}

func newAttachment(props Properties) Attachment {
	return Attachment{
		DisplayName: getOr(props, "DisplayName", ""),
		Payload:     getOr(props, "AttachDataObject", ""),
		Extension:   getOr(props, "AttachExtension", ""),
		MimeTag:     getOr(props, "AttachMimeTag", ""),
		FileName:    getOr(props, "AttachFilename", ""),
		ContentID:   getOr(props, "AttachContentId", ""),
		Size:        getOr(props, "AttachSize", ""),
	}
}

// Recipient is one __recip_version1.0_#-numbered sub-storage, projected
// as a Person plus its MAPI recipient type (To/Cc/Bcc, by numeric code).
type Recipient struct {
	Person
	Type string
}

// recipientTypeName maps the numeric MAPI recipient type (0x0C15) to
// the name spec.md's flat to/cc/bcc split already uses.
func recipientTypeName(code string) string {
	switch code {
	case "1":
		return "To"
	case "2":
		return "Cc"
	case "3":
		return "Bcc"
	case "":
		return ""
	default:
		return "Unknown"
	}
}

func newRecipient(props Properties) Recipient {
	return Recipient{
		Person: personFromProps(props, "DisplayName", "SmtpAddress", "EmailAddress"),
		Type:   recipientTypeName(getOr(props, "RecipientType", "")),
	}
}

// Outlook is a fully decoded .msg message.
type Outlook struct {
	Headers       TransportHeaders
	Sender        Person
	To            []Recipient
	Cc            []Person
	Bcc           string
	Subject       string
	Body          string
	RtfCompressed string
	Attachments   []Attachment

	MessageClass      string
	ClientSubmitTime  string
	SentRepresenting  Person
	InternetMessageID string
	ConversationTopic string
	Importance        string
	HasAttachments    bool
}

// Debug gates the entry-by-entry trace log Parse emits while walking
// the compound file. Off by default.
var Debug bool

func debugf(format string, args ...interface{}) {
	if Debug {
		log.Printf(format, args...)
	}
}

// populate assembles an Outlook from the classified storages, the way
// the original groups property lookups by destination field rather
// than by source stream.
func populate(storages *Storages) *Outlook {
	root := storages.Root
	headerText := getOr(root, "TransportMessageHeaders", "")
	headers := newTransportHeaders(headerText)

	to := make([]Recipient, len(storages.Recipients))
	for i, props := range storages.Recipients {
		to[i] = newRecipient(props)
	}

	attachments := make([]Attachment, len(storages.Attachments))
	for i, props := range storages.Attachments {
		attachments[i] = newAttachment(props)
	}

	return &Outlook{
		Headers: headers,
		Sender: personFromProps(root, "SenderName",
			"SenderSmtpAddress", "SenderEmailAddress"),
		To:            to,
		Cc:            extractCCFromHeaders(headerText),
		Bcc:           getOr(root, "DisplayBcc", ""),
		Subject:       getOr(root, "Subject", ""),
		Body:          getOr(root, "Body", ""),
		RtfCompressed: getOr(root, "RtfCompressed", ""),
		Attachments:   attachments,

		MessageClass:     getOr(root, "MessageClass", ""),
		ClientSubmitTime: getOr(root, "ClientSubmitTime", ""),
		SentRepresenting: personFromProps(root, "SentRepresentingName",
			"SentRepresentingEmailAddress"),
		InternetMessageID: getOr(root, "InternetMessageId", ""),
		ConversationTopic: getOr(root, "ConversationTopic", ""),
		Importance:        getOr(root, "Importance", ""),
		HasAttachments:    len(attachments) > 0,
	}
}

// Parse decodes a .msg file already loaded into a compound-file Reader.
func Parse(doc *cfb.Reader) (*Outlook, error) {
	debugf("msgparser: root entry %q with %d children", doc.Root.Name, len(doc.Root.Children))
	storages := buildStorages(doc)
	debugf("msgparser: found %d recipients, %d attachments",
		len(storages.Recipients), len(storages.Attachments))
	return populate(storages), nil
}

// ParseFile opens and decodes the .msg file at path.
func ParseFile(path string) (*Outlook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := cfb.New(f)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}
