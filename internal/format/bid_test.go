package format

import "testing"

func TestBIDIsInternal(t *testing.T) {
	if !BID(0x101).IsInternal() {
		t.Fatalf("odd BID should be internal")
	}
	if BID(0x100).IsInternal() {
		t.Fatalf("even BID should not be internal")
	}
}
