package format

import "testing"

func TestNIDTypeAndIndex(t *testing.T) {
	n := NID((42 << NIDIndexShift) | NIDTypeFolder)
	if n.Type() != NIDTypeFolder {
		t.Fatalf("Type() = %d, want %d", n.Type(), NIDTypeFolder)
	}
	if n.Index() != 42 {
		t.Fatalf("Index() = %d, want 42", n.Index())
	}
}

func TestNIDWithType(t *testing.T) {
	n := NID((7 << NIDIndexShift) | NIDTypeFolder)
	hier := n.WithType(NIDTypeHierarchyTable)
	if hier.Type() != NIDTypeHierarchyTable || hier.Index() != 7 {
		t.Fatalf("WithType produced %+v", hier)
	}
}

func TestNIDIsSpecial(t *testing.T) {
	if !NID(NIDMessageStore).IsSpecial() {
		t.Fatalf("message store NID should be special")
	}
	if NID(12345).IsSpecial() {
		t.Fatalf("arbitrary NID should not be special")
	}
}
