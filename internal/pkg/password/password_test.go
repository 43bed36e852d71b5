package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Secret1,pass")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "Secret1,pass" {
		t.Fatal("hash must not equal the plain password")
	}

	if !Verify("Secret1,pass", hash) {
		t.Error("correct password must verify")
	}
	if Verify("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-b")

	if a == b {
		t.Error("different tokens must hash differently")
	}
	if a != HashToken("token-a") {
		t.Error("token hashing must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}
