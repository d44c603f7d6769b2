package principal

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// Devnet deployer account used by Clarinet.
const devnetDeployer = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"devnet deployer", devnetDeployer, nil},
		{"lowercase is accepted", "st1pqhqkv0rjxzfy1dgx8mnsnyve3vgzjsrtpgzgm", nil},
		{"contract principal", devnetDeployer + ".circle-treasury", nil},
		{"empty", "", ErrEmpty},
		{"not an address", "invalid-address", ErrMalformed},
		{"wrong prefix", "XT1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", ErrMalformed},
		{"flipped character", "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGN", ErrBadChecksum},
		{"bad contract name", devnetDeployer + ".1bad", ErrContractName},
		{"empty contract name", devnetDeployer + ".", ErrContractName},
		{"script injection", "<script>alert(\"xss\")</script>", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate(%q) = %v, want nil", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestFromHash160RoundTrip(t *testing.T) {
	hashes := [][]byte{
		bytes.Repeat([]byte{0xab}, 20),
		append([]byte{0x00, 0x00}, bytes.Repeat([]byte{0x11}, 18)...),
		bytes.Repeat([]byte{0xff}, 20),
	}

	for _, version := range []byte{MainnetSingleSig, TestnetSingleSig, MainnetMultiSig, TestnetMultiSig} {
		for _, h := range hashes {
			addr, err := FromHash160(version, h)
			if err != nil {
				t.Fatalf("FromHash160 failed: %v", err)
			}
			gotVersion, gotHash, err := Decode(addr)
			if err != nil {
				t.Fatalf("Decode(%s) failed: %v", addr, err)
			}
			if gotVersion != version {
				t.Errorf("version: got %d, want %d", gotVersion, version)
			}
			if !bytes.Equal(gotHash, h) {
				t.Errorf("hash160: got %x, want %x", gotHash, h)
			}
		}
	}
}

func TestFromHash160Prefixes(t *testing.T) {
	h := bytes.Repeat([]byte{0x42}, 20)
	tests := []struct {
		version byte
		prefix  string
	}{
		{MainnetSingleSig, "SP"},
		{TestnetSingleSig, "ST"},
		{MainnetMultiSig, "SM"},
		{TestnetMultiSig, "SN"},
	}
	for _, tt := range tests {
		addr, err := FromHash160(tt.version, h)
		if err != nil {
			t.Fatalf("FromHash160 failed: %v", err)
		}
		if addr[:2] != tt.prefix {
			t.Errorf("version %d: got prefix %s, want %s", tt.version, addr[:2], tt.prefix)
		}
	}
}

func TestFromPublicKey(t *testing.T) {
	pub, _ := hex.DecodeString("03" + "5b3ab4f2c6a8e7d9b0c1d2e3f405162738495a6b7c8d9eafb0c1d2e3f4051627")

	addr, err := FromPublicKey(TestnetSingleSig, pub)
	if err != nil {
		t.Fatalf("FromPublicKey failed: %v", err)
	}
	if err := Validate(addr); err != nil {
		t.Errorf("derived address %s does not validate: %v", addr, err)
	}

	again, _ := FromPublicKey(TestnetSingleSig, pub)
	if again != addr {
		t.Errorf("derivation not deterministic: %s vs %s", addr, again)
	}

	if _, err := FromPublicKey(TestnetSingleSig, pub[:10]); !errors.Is(err, ErrMalformed) {
		t.Errorf("short key: got %v, want ErrMalformed", err)
	}
}
