package main

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestParseCircleID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseCircleID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCircleID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCircleID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestResolvePrincipal(t *testing.T) {
	defer func() { tokenPrincipal, tokenPubKey, tokenMainnet = "", "", false }()

	tokenPrincipal = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	got, err := resolvePrincipal()
	if err != nil || got != tokenPrincipal {
		t.Fatalf("expected principal to pass through, got %q, %v", got, err)
	}

	tokenPrincipal = "not-a-principal"
	if _, err := resolvePrincipal(); err == nil {
		t.Error("expected invalid principal to be rejected")
	}

	tokenPrincipal = ""
	tokenPubKey = "02" + strings.Repeat("ab", 32)
	testnet, err := resolvePrincipal()
	if err != nil {
		t.Fatalf("resolvePrincipal failed: %v", err)
	}
	if !strings.HasPrefix(testnet, "ST") {
		t.Errorf("expected testnet principal, got %s", testnet)
	}

	tokenMainnet = true
	mainnet, err := resolvePrincipal()
	if err != nil {
		t.Fatalf("resolvePrincipal failed: %v", err)
	}
	if !strings.HasPrefix(mainnet, "SP") {
		t.Errorf("expected mainnet principal, got %s", mainnet)
	}

	tokenPubKey = "zz"
	if _, err := resolvePrincipal(); err == nil {
		t.Error("expected invalid hex to be rejected")
	}
}

func TestHashKeyCommand(t *testing.T) {
	const key = "correct-horse-battery-staple"
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"hash-key", key})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("hash-key failed: %v", err)
	}
	hash := strings.TrimSpace(out.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		t.Errorf("printed hash does not match key: %v", err)
	}
}
