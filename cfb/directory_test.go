package cfb

import "testing"

// fixture mirrors a small eleven-node storage tree: a root storage
// whose sibling tree (by right-pointer chains, no rotation) threads
// Alpha -> Bravo -> Charlie, with Bravo and Charlie each heading their
// own substorages.
func fixture() []*Entry {
	e := make([]*Entry, 12)
	names := []string{"Root Entry", "Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "Indigo", "Jello", "Kilo"}
	left := []uint32{noStream, noStream, noStream, noStream, noStream, 4, noStream, noStream, noStream, 8, noStream, noStream}
	right := []uint32{noStream, 2, 3, noStream, noStream, 6, noStream, noStream, noStream, noStream, noStream, noStream}
	child := []uint32{1, noStream, 5, 7, noStream, 9, noStream, 10, noStream, 11, noStream, noStream}
	for i := range e {
		typ := EntryStream
		if child[i] != noStream {
			typ = EntryStorage
		}
		if i == 0 {
			typ = EntryRoot
		}
		e[i] = &Entry{Name: names[i], Type: typ, leftSibID: left[i], rightSibID: right[i], childID: child[i]}
	}
	return e
}

func TestBuildTree(t *testing.T) {
	entries := fixture()
	root, err := buildTree(entries)
	if err != nil {
		t.Fatalf("buildTree: %v", err)
	}
	flat := flatten(root)
	var got []string
	for _, e := range flat {
		got = append(got, e.Name)
	}
	want := []string{"Alpha", "Bravo", "Delta", "Echo", "Hotel", "Indigo", "Kilo", "Foxtrot", "Charlie", "Golf", "Jello"}
	if len(got) != len(want) {
		t.Fatalf("flatten length: got %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flatten[%d]: got %s, want %s", i, got[i], want[i])
		}
	}

	jello := entries[10]
	if len(jello.Path) != 3 || jello.Path[0] != "Charlie" || jello.Path[1] != "Golf" || jello.Path[2] != "Jello" {
		t.Errorf("Jello path: got %v", jello.Path)
	}
}

func TestBuildTreeRejectsUnusedSlot(t *testing.T) {
	entries := fixture()
	entries[1].Type = EntryUnused
	if _, err := buildTree(entries); err != ErrNodeType {
		t.Errorf("expected ErrNodeType, got %v", err)
	}
}

func TestSiblingIDsDetectsCycle(t *testing.T) {
	entries := fixture()
	entries[4].rightSibID = 5 // Delta now points back at its own ancestor Echo
	if _, err := siblingIDs(entries, 5); err != ErrBadDirectory {
		t.Errorf("expected ErrBadDirectory on cycle, got %v", err)
	}
}
