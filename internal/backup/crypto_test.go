package backup

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte("SQLite format 3\x00 fake snapshot contents")

	sealed, err := Encrypt(plaintext, "correct horse battery staple")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Fatal("ciphertext leaks plaintext")
	}

	opened, err := Decrypt(sealed, "correct horse battery staple")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Error("round trip altered the snapshot")
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	sealed, err := Encrypt([]byte("snapshot"), "right")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(sealed, "wrong"); err == nil {
		t.Fatal("expected decryption failure with wrong passphrase")
	}
}

func TestDecryptTruncated(t *testing.T) {
	if _, err := Decrypt([]byte("too short"), "any"); err == nil {
		t.Fatal("expected failure on truncated input")
	}
}

func TestEncryptUniqueSaltAndNonce(t *testing.T) {
	a, err := Encrypt([]byte("snapshot"), "pass")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := Encrypt([]byte("snapshot"), "pass")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same snapshot should differ")
	}
}
