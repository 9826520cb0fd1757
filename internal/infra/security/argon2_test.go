package security

import (
	"strings"
	"testing"
)

func testHasher(t *testing.T) *Argon2Hasher {
	t.Helper()

	// Reduced work factor keeps the test fast while staying above the
	// parameter floor.
	hasher, err := NewArgon2Hasher(Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  8,
		KeyLength:   16,
	})
	if err != nil {
		t.Fatalf("NewArgon2Hasher: %v", err)
	}
	return hasher
}

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	hasher := testHasher(t)

	encoded, err := hasher.Hash("Abc123!@#")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if !strings.HasPrefix(encoded, "argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %q", encoded)
	}

	ok, err := hasher.Verify("Abc123!@#", encoded)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}

	ok, err = hasher.Verify("abc123!@#", encoded)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatal("case-variant password must not verify")
	}
}

func TestArgon2Hasher_SaltIsFreshPerHash(t *testing.T) {
	hasher := testHasher(t)

	first, err := hasher.Hash("Abc123!@#")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("Abc123!@#")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestArgon2Hasher_VerifyUsesEmbeddedParams(t *testing.T) {
	encoded, err := testHasher(t).Hash("Abc123!@#")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	// A hasher configured with different parameters must still verify a
	// hash produced under the old ones.
	stronger, err := NewArgon2Hasher(DefaultArgon2Params())
	if err != nil {
		t.Fatalf("NewArgon2Hasher: %v", err)
	}

	ok, err := stronger.Verify("Abc123!@#", encoded)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected old-parameter hash to verify")
	}
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	hasher := testHasher(t)

	if _, err := hasher.Verify("password", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}

	ok, err := hasher.Verify("", "")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatal("empty inputs must not verify")
	}
}

func TestNewArgon2Hasher_RejectsWeakParams(t *testing.T) {
	if _, err := NewArgon2Hasher(Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}); err == nil {
		t.Fatal("expected error for sub-floor memory")
	}
	if _, err := NewArgon2Hasher(Argon2Params{Memory: 8 * 1024, Iterations: 0, Parallelism: 1, SaltLength: 8, KeyLength: 16}); err == nil {
		t.Fatal("expected error for zero iterations")
	}
}
