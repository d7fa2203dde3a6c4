package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("s3cret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if err := Compare(hash, "s3cret-password"); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}
	if err := Compare(hash, "wrong-password"); err == nil {
		t.Fatalf("expected mismatch to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same input")
	}
}
