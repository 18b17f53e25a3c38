// Command msgdump decodes an Outlook .msg file and prints its envelope,
// recipients, and attachments.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/cfbmsg/msgparser/msgparser"
)

type record struct {
	Headers msgparser.TransportHeaders `json:"headers"`

	Sender            msgparser.Person       `json:"sender"`
	To                []msgparser.Recipient  `json:"to"`
	Cc                []msgparser.Person     `json:"cc"`
	Bcc               string                 `json:"bcc"`
	Subject           string                 `json:"subject"`
	Body              string                 `json:"body"`
	RtfCompressed     string                 `json:"rtf_compressed"`
	Attachments       []msgparser.Attachment `json:"attachments"`
	MessageClass      string                 `json:"message_class"`
	ClientSubmitTime  string                 `json:"client_submit_time"`
	SentRepresenting  msgparser.Person       `json:"sent_representing"`
	InternetMessageID string                 `json:"internet_message_id"`
	ConversationTopic string                 `json:"conversation_topic"`
	Importance        string                 `json:"importance"`
	HasAttachments    bool                   `json:"has_attachments"`
}

func toRecord(o *msgparser.Outlook) record {
	return record{
		Headers:           o.Headers,
		Sender:            o.Sender,
		To:                o.To,
		Cc:                o.Cc,
		Bcc:               o.Bcc,
		Subject:           o.Subject,
		Body:              o.Body,
		RtfCompressed:     o.RtfCompressed,
		Attachments:       o.Attachments,
		MessageClass:      o.MessageClass,
		ClientSubmitTime:  o.ClientSubmitTime,
		SentRepresenting:  o.SentRepresenting,
		InternetMessageID: o.InternetMessageID,
		ConversationTopic: o.ConversationTopic,
		Importance:        o.Importance,
		HasAttachments:    o.HasAttachments,
	}
}

func main() {
	jsonOut := flag.Bool("json", false, "print the full decoded record as JSON")
	debug := flag.Bool("debug", false, "enable msgparser's entry-by-entry debug trace")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: msgdump [-json] [-debug] <path-to-.msg>")
	}
	path := flag.Arg(0)

	msgparser.Debug = *debug

	o, err := msgparser.ParseFile(path)
	if err != nil {
		log.Fatalf("msgdump: %v", err)
	}

	if *jsonOut {
		b, err := json.MarshalIndent(toRecord(o), "", "  ")
		if err != nil {
			log.Fatalf("msgdump: %v", err)
		}
		fmt.Println(string(b))
		return
	}

	printHuman(o)
}

func printHuman(o *msgparser.Outlook) {
	fmt.Printf("From:    %s <%s>\n", o.Sender.Name, o.Sender.Email)
	for _, r := range o.To {
		fmt.Printf("To:      %s <%s> [%s]\n", r.Name, r.Email, r.Type)
	}
	for _, c := range o.Cc {
		fmt.Printf("Cc:      %s <%s>\n", c.Name, c.Email)
	}
	fmt.Printf("Subject: %s\n", o.Subject)
	fmt.Printf("Body:    %s\n", preview(o.Body, 200))
	fmt.Printf("Attachments (%d):\n", len(o.Attachments))
	for _, a := range o.Attachments {
		fmt.Printf("  - %s (%s)\n", a.FileName, a.MimeTag)
	}
}

func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
