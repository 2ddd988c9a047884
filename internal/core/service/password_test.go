package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

func TestHashPassword_Format(t *testing.T) {
	encoded, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=16384,t=2,p=2$") {
		t.Errorf("unexpected hash format: %s", encoded)
	}

	other, _ := HashPassword("hunter2")
	if encoded == other {
		t.Error("two hashes of the same password should use different salts")
	}
}

func TestVerifier_Verify(t *testing.T) {
	encoded, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVerifier(encoded)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}

	tests := []struct {
		password string
		want     bool
	}{
		{"correct horse", true},
		{"correct horse ", false},
		{"Correct horse", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := v.Verify(tt.password); got != tt.want {
			t.Errorf("Verify(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestNewPasswordVerifier(t *testing.T) {
	v, err := NewPasswordVerifier("")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Verify("") {
		t.Error("empty password should verify against its own hash")
	}
	if v.Verify("x") {
		t.Error("non-empty password should not verify against empty hash")
	}
}

func TestNewVerifier_CustomParams(t *testing.T) {
	// Parameters are read from the hash, not assumed.
	v, err := NewVerifier("$argon2id$v=19$m=8,t=1,p=1$c2FsdHNhbHQ$" + "AAAAAAAAAAAAAAAAAAAAAA")
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	if v.memory != 8 || v.time != 1 || v.threads != 1 {
		t.Errorf("params = m=%d t=%d p=%d", v.memory, v.time, v.threads)
	}
	if len(v.hash) != 16 {
		t.Errorf("hash length = %d, want 16", len(v.hash))
	}
}

func TestNewVerifier_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"plaintext", "hunter2"},
		{"wrong algorithm", "$argon2i$v=19$m=16384,t=2,p=2$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=16$m=16384,t=2,p=2$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=2,p=2$c2FsdA$aGFzaA"},
		{"zero cost", "$argon2id$v=19$m=0,t=2,p=2$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=16384,t=2,p=2$!!!$aGFzaA"},
		{"bad hash", "$argon2id$v=19$m=16384,t=2,p=2$c2FsdA$!!!"},
		{"empty hash", "$argon2id$v=19$m=16384,t=2,p=2$c2FsdA$"},
		{"missing field", "$argon2id$v=19$m=16384,t=2,p=2$c2FsdA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVerifier(tt.encoded)
			if !errors.Is(err, domain.ErrInvalidPasswordHash) {
				t.Errorf("NewVerifier(%q) error = %v, want ErrInvalidPasswordHash", tt.encoded, err)
			}
		})
	}
}
