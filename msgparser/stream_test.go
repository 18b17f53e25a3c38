package msgparser

import "testing"

func TestExtractIDAndType(t *testing.T) {
	propID, typeCode, ok := extractIDAndType("__substg1.0_0037001F")
	if !ok {
		t.Fatal("expected match")
	}
	if propID != "0037" || typeCode != "001F" {
		t.Fatalf("got %q, %q", propID, typeCode)
	}
}

func TestExtractIDAndTypeRejectsNonSubstg(t *testing.T) {
	if _, _, ok := extractIDAndType("__recip_version1.0_#00000001"); ok {
		t.Fatal("expected no match")
	}
}

func TestExtractIDAndTypeRejectsShortSuffix(t *testing.T) {
	if _, _, ok := extractIDAndType("__substg1.0_1234"); ok {
		t.Fatal("expected no match for a truncated suffix")
	}
}
