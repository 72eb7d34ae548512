package credential_test

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/campus-registry/internal/credential"
)

func TestHashAndVerify(t *testing.T) {
	hasher := credential.NewHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("expected the hash to differ from the plaintext")
	}

	if !credential.Verify("secret123", hash) {
		t.Error("expected the original password to verify")
	}
	if credential.Verify("wrong", hash) {
		t.Error("expected a wrong password to fail verification")
	}
}

func TestHashesAreSalted(t *testing.T) {
	hasher := credential.NewHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	hasher := credential.NewHasher(bcrypt.MinCost)

	if _, err := hasher.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("expected an error for a password beyond 72 bytes")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if credential.Verify("secret123", "not-a-bcrypt-hash") {
		t.Error("expected a malformed hash to verify false")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	// An out-of-range cost must still produce a usable hasher.
	hasher := credential.NewHasher(99)

	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("failed to read cost: %v", err)
	}
	if cost != credential.DefaultCost {
		t.Errorf("expected cost %d, got %d", credential.DefaultCost, cost)
	}
}
