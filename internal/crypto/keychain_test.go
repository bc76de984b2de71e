package crypto

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testSalt() []byte {
	return bytes.Repeat([]byte{0xAB}, SaltSize)
}

func TestNewLocalKeyChain_SealOpenRoundTrip(t *testing.T) {
	kc, err := NewLocalKeyChain("correct horse battery staple", testSalt())
	if err != nil {
		t.Fatalf("NewLocalKeyChain error: %v", err)
	}

	plaintext := []byte("share key material")
	blob, err := kc.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if bytes.Contains(blob, plaintext) {
		t.Fatalf("sealed blob contains plaintext")
	}

	got, err := kc.Open(blob)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("Open = %q, want %q", got, plaintext)
	}
}

func TestNewLocalKeyChain_DeterministicAcrossInstances(t *testing.T) {
	kc1, err := NewLocalKeyChain("pass", testSalt())
	if err != nil {
		t.Fatalf("NewLocalKeyChain error: %v", err)
	}
	kc2, err := NewLocalKeyChain("pass", testSalt())
	if err != nil {
		t.Fatalf("NewLocalKeyChain error: %v", err)
	}

	blob, err := kc1.Seal([]byte("data"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if _, err := kc2.Open(blob); err != nil {
		t.Fatalf("expected second instance to open blob, got: %v", err)
	}
}

func TestLocalKeyChain_WrongPassphraseFails(t *testing.T) {
	kc1, _ := NewLocalKeyChain("right", testSalt())
	kc2, _ := NewLocalKeyChain("wrong", testSalt())

	blob, err := kc1.Seal([]byte("data"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	_, err = kc2.Open(blob)
	if !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got: %v", err)
	}
}

func TestLocalKeyChain_TamperedBlobFails(t *testing.T) {
	kc, _ := NewLocalKeyChain("pass", testSalt())

	blob, _ := kc.Seal([]byte("data"))
	blob[len(blob)-1] ^= 0xFF

	if _, err := kc.Open(blob); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got: %v", err)
	}
}

func TestLocalKeyChain_ShortBlobFails(t *testing.T) {
	kc, _ := NewLocalKeyChain("pass", testSalt())

	if _, err := kc.Open([]byte{1, 2, 3}); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got: %v", err)
	}
}

func TestNewLocalKeyChain_InvalidInput(t *testing.T) {
	if _, err := NewLocalKeyChain("", testSalt()); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for empty passphrase, got: %v", err)
	}
	if _, err := NewLocalKeyChain("pass", []byte{1}); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for short salt, got: %v", err)
	}
}

func TestLoadOrCreateSalt_CreatesThenReuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.salt")

	s1, err := LoadOrCreateSalt(path)
	if err != nil {
		t.Fatalf("LoadOrCreateSalt error: %v", err)
	}
	if len(s1) != SaltSize {
		t.Fatalf("salt length = %d, want %d", len(s1), SaltSize)
	}

	s2, err := LoadOrCreateSalt(path)
	if err != nil {
		t.Fatalf("LoadOrCreateSalt error: %v", err)
	}
	if !bytes.Equal(s1, s2) {
		t.Fatalf("expected persisted salt to be reused")
	}
}

func TestLoadOrCreateSalt_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.salt")
	if err := os.WriteFile(path, []byte("short"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadOrCreateSalt(path); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got: %v", err)
	}
}
