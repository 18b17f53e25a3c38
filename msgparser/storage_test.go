package msgparser

import "testing"

func TestClassifyStorageRecipient(t *testing.T) {
	s, ok := classifyStorage("__recip_version1.0_#00000001")
	if !ok {
		t.Fatal("expected match")
	}
	if s.Kind != KindRecipient || s.Index != 1 {
		t.Fatalf("got %+v", s)
	}
}

func TestClassifyStorageAttachment(t *testing.T) {
	s, ok := classifyStorage("__attach_version1.0_#00000002")
	if !ok {
		t.Fatal("expected match")
	}
	if s.Kind != KindAttachment || s.Index != 2 {
		t.Fatalf("got %+v", s)
	}
}

func TestClassifyStorageMSBFirst(t *testing.T) {
	// 0x0000000F parses MSB-first as 15, not via any byte-reversal.
	s, ok := classifyStorage("__recip_version1.0_#0000000F")
	if !ok || s.Index != 15 {
		t.Fatalf("got %+v, %v", s, ok)
	}
}

func TestClassifyStorageRejectsOther(t *testing.T) {
	if _, ok := classifyStorage("__substg1.0_00370102"); ok {
		t.Fatal("expected no match")
	}
}

func TestToPropertiesSliceFillsGaps(t *testing.T) {
	byIdx := map[uint32]Properties{0: {"DisplayName": StringValue("a")}, 2: {"DisplayName": StringValue("c")}}
	out := toPropertiesSlice(byIdx, 3)
	if len(out) != 3 {
		t.Fatalf("got %d entries", len(out))
	}
	if out[1] == nil || len(out[1]) != 0 {
		t.Fatalf("expected empty placeholder at gap, got %+v", out[1])
	}
	if out[2]["DisplayName"].String() != "c" {
		t.Fatalf("got %+v", out[2])
	}
}
