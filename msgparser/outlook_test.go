package msgparser

import "testing"

func TestExtractCCFromHeaders(t *testing.T) {
	headers := "From: a@b.com\r\nCC: Brian Zhou <brizhou@gmail.com>\r\nSubject: hi\r\n"
	cc := extractCCFromHeaders(headers)
	if len(cc) != 1 {
		t.Fatalf("got %d entries, want 1", len(cc))
	}
	if cc[0].Name != "Brian Zhou" || cc[0].Email != "brizhou@gmail.com" {
		t.Fatalf("got %+v", cc[0])
	}
}

func TestExtractCCFromHeadersMultiple(t *testing.T) {
	headers := "CC: Alice A <alice@x.com>, Bob B <bob@x.com>\r\n"
	cc := extractCCFromHeaders(headers)
	if len(cc) != 2 {
		t.Fatalf("got %d entries, want 2", len(cc))
	}
	if cc[0].Name != "Alice A" || cc[0].Email != "alice@x.com" {
		t.Fatalf("got %+v", cc[0])
	}
	if cc[1].Name != "Bob B" || cc[1].Email != "bob@x.com" {
		t.Fatalf("got %+v", cc[1])
	}
}

func TestExtractCCFromHeadersAbsent(t *testing.T) {
	if cc := extractCCFromHeaders("From: a@b.com\r\n"); cc != nil {
		t.Fatalf("got %+v, want nil", cc)
	}
}

func sixRecipients() []Properties {
	names := []string{"Alice Adams", "Sriram Govindan", "Carl Chen", "Dina Diaz", "Evan Esposito", "Faye Farrow"}
	out := make([]Properties, len(names))
	for i, n := range names {
		out[i] = Properties{"DisplayName": StringValue(n)}
	}
	return out
}

func TestPopulateRecipients(t *testing.T) {
	storages := &Storages{
		Root:       Properties{},
		Recipients: sixRecipients(),
	}
	o := populate(storages)
	if len(o.To) != 6 {
		t.Fatalf("got %d recipients, want 6", len(o.To))
	}
	if o.To[1].Name != "Sriram Govindan" {
		t.Fatalf("got %q", o.To[1].Name)
	}
}

func TestPopulateAttachments(t *testing.T) {
	storages := &Storages{
		Root: Properties{},
		Attachments: []Properties{
			{"AttachFilename": StringValue("a.txt")},
			{"AttachFilename": StringValue("b.txt")},
			{"AttachFilename": StringValue("c.txt")},
		},
	}
	o := populate(storages)
	if len(o.Attachments) != 3 {
		t.Fatalf("got %d attachments, want 3", len(o.Attachments))
	}
	if !o.HasAttachments {
		t.Fatal("expected HasAttachments true")
	}
	if o.Attachments[2].FileName != "c.txt" {
		t.Fatalf("got %q", o.Attachments[2].FileName)
	}
}

func TestPopulateSenderPrefersSmtpAddress(t *testing.T) {
	storages := &Storages{
		Root: Properties{
			"SenderName":         StringValue("Jo Lee"),
			"SenderSmtpAddress":  StringValue("jo@smtp.example"),
			"SenderEmailAddress": StringValue("jo@fallback.example"),
		},
	}
	o := populate(storages)
	if o.Sender.Email != "jo@smtp.example" {
		t.Fatalf("got %q", o.Sender.Email)
	}
}
