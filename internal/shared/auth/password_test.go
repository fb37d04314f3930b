package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Testpass123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Testpass123" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}

	if !VerifyPassword("Testpass123", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("Testpass123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("Testpass123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for repeated calls")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
	if VerifyPassword("anything", "") {
		t.Fatalf("expected empty hash to fail verification")
	}
}
