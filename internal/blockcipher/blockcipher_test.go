package blockcipher

import "testing"

func TestPermuteTablesAreInverses(t *testing.T) {
	for i := 0; i < 256; i++ {
		if decodeTable[encodeTable[i]] != byte(i) {
			t.Fatalf("decodeTable is not the inverse of encodeTable at %d", i)
		}
	}
}

func TestPermuteRoundTrip(t *testing.T) {
	original := []byte("the quick brown fox jumps over the lazy dog")
	data := append([]byte(nil), original...)
	if err := Encode(data, 0, MethodPermute); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := Decode(data, 0, MethodPermute); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(data) != string(original) {
		t.Fatalf("round trip mismatch: got %q want %q", data, original)
	}
}

func TestCyclicRoundTrip(t *testing.T) {
	original := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	data := append([]byte(nil), original...)
	const bid = 0xABCDEF42
	if err := Encode(data, bid, MethodCyclic); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) == string(original) {
		t.Fatalf("cyclic encode should change data")
	}
	if err := Decode(data, bid, MethodCyclic); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(data) != string(original) {
		t.Fatalf("round trip mismatch: got %v want %v", data, original)
	}
}

func TestNoneIsIdentity(t *testing.T) {
	data := []byte{1, 2, 3}
	if err := Decode(data, 0, MethodNone); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if data[0] != 1 || data[1] != 2 || data[2] != 3 {
		t.Fatalf("MethodNone should not modify data")
	}
}

func TestUnknownMethodErrors(t *testing.T) {
	if err := Decode([]byte{1}, 0, Method(99)); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}
