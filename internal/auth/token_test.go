package auth

import "testing"

func TestHashAndVerifyToken(t *testing.T) {
	t.Parallel()

	hash, err := HashToken("reel-secret-token")
	if err != nil {
		t.Fatalf("HashToken returned error: %v", err)
	}
	if hash == "" || hash == "reel-secret-token" {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}

	if !VerifyToken("reel-secret-token", hash) {
		t.Fatalf("expected token to verify against its own hash")
	}
	if VerifyToken("wrong-token", hash) {
		t.Fatalf("expected wrong token to fail verification")
	}
	if VerifyToken("", hash) {
		t.Fatalf("expected empty token to fail verification")
	}
	if VerifyToken("reel-secret-token", "") {
		t.Fatalf("expected empty hash to fail verification")
	}
}

func TestHashTokenRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := HashToken("   "); err == nil {
		t.Fatalf("expected error for whitespace-only token")
	}
}

func TestNormalizeUserID(t *testing.T) {
	t.Parallel()

	if got := NormalizeUserID("  Alice42 "); got != "alice42" {
		t.Fatalf("expected alice42, got %q", got)
	}
}
