package auth

import "testing"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("Qwerty1!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "Qwerty1!" {
		t.Fatal("digest must not equal the plaintext")
	}

	if !h.Verify(digest, "Qwerty1!") {
		t.Error("expected digest to verify against original password")
	}
	if h.Verify(digest, "Qwerty1?") {
		t.Error("expected verification to fail for wrong password")
	}
}

func TestBcryptHasher_DistinctDigests(t *testing.T) {
	h := NewBcryptHasher()

	a, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Error("expected salted digests to differ")
	}
}
