// Package principal validates and derives Stacks principals.
//
// A standard principal is "S" + c32(version) + c32check(hash160 + checksum),
// where checksum is the first four bytes of SHA256(SHA256(version || hash160)).
// A contract principal appends "." and a contract name.
package principal

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // Stacks hash160 is defined over RIPEMD-160.
)

// Address versions.
const (
	MainnetSingleSig byte = 22 // SP...
	MainnetMultiSig  byte = 20 // SM...
	TestnetSingleSig byte = 26 // ST...
	TestnetMultiSig  byte = 21 // SN...
)

const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	ErrEmpty        = errors.New("principal is empty")
	ErrMalformed    = errors.New("principal is malformed")
	ErrBadVersion   = errors.New("principal has unknown version")
	ErrBadChecksum  = errors.New("principal checksum mismatch")
	ErrContractName = errors.New("principal has invalid contract name")
)

var contractNameRe = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9]|[-_])*$`)

// Validate checks that s is a well-formed standard or contract principal.
func Validate(s string) error {
	if s == "" {
		return ErrEmpty
	}
	addr, contract, isContract := strings.Cut(s, ".")
	if isContract {
		if len(contract) == 0 || len(contract) > 40 || !contractNameRe.MatchString(contract) {
			return fmt.Errorf("%w: %q", ErrContractName, contract)
		}
	}
	_, _, err := Decode(addr)
	return err
}

// Decode parses a standard principal into its version and hash160.
func Decode(addr string) (version byte, hash160 []byte, err error) {
	if len(addr) < 5 || normalize(addr[0]) != 'S' {
		return 0, nil, fmt.Errorf("%w: %q", ErrMalformed, addr)
	}
	v := strings.IndexByte(c32Alphabet, normalize(addr[1]))
	if v < 0 {
		return 0, nil, fmt.Errorf("%w: %q", ErrMalformed, addr)
	}
	version = byte(v)
	if !knownVersion(version) {
		return 0, nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	payload, err := c32Decode(addr[2:])
	if err != nil {
		return 0, nil, err
	}
	if len(payload) != 24 {
		return 0, nil, fmt.Errorf("%w: payload is %d bytes", ErrMalformed, len(payload))
	}

	hash160, sum := payload[:20], payload[20:]
	if !bytes.Equal(sum, checksum(version, hash160)) {
		return 0, nil, ErrBadChecksum
	}
	return version, hash160, nil
}

// FromHash160 encodes a 20-byte hash160 as a standard principal.
func FromHash160(version byte, hash160 []byte) (string, error) {
	if len(hash160) != 20 {
		return "", fmt.Errorf("%w: hash160 must be 20 bytes, got %d", ErrMalformed, len(hash160))
	}
	if !knownVersion(version) {
		return "", fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
	payload := append(append([]byte{}, hash160...), checksum(version, hash160)...)
	return "S" + string(c32Alphabet[version]) + c32Encode(payload), nil
}

// FromPublicKey derives the single-sig principal owning a public key.
func FromPublicKey(version byte, pubKey []byte) (string, error) {
	if len(pubKey) != 33 && len(pubKey) != 65 {
		return "", fmt.Errorf("%w: public key must be 33 or 65 bytes, got %d", ErrMalformed, len(pubKey))
	}
	sha := sha256.Sum256(pubKey)
	h := ripemd160.New()
	h.Write(sha[:])
	return FromHash160(version, h.Sum(nil))
}

func knownVersion(v byte) bool {
	switch v {
	case MainnetSingleSig, MainnetMultiSig, TestnetSingleSig, TestnetMultiSig:
		return true
	}
	return false
}

func checksum(version byte, hash160 []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, hash160...))
	second := sha256.Sum256(first[:])
	return second[:4]
}

// c32Encode is big-endian base32 over the Crockford alphabet, keeping one
// '0' digit per leading zero byte.
func c32Encode(data []byte) string {
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	n := new(big.Int).SetBytes(data)
	base := big.NewInt(32)
	mod := new(big.Int)
	var digits []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, c32Alphabet[mod.Int64()])
	}
	for i := 0; i < zeros; i++ {
		digits = append(digits, '0')
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

func c32Decode(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrMalformed
	}
	zeros := 0
	for zeros < len(s) && normalize(s[zeros]) == '0' {
		zeros++
	}

	n := new(big.Int)
	base := big.NewInt(32)
	for i := zeros; i < len(s); i++ {
		d := strings.IndexByte(c32Alphabet, normalize(s[i]))
		if d < 0 {
			return nil, fmt.Errorf("%w: invalid character %q", ErrMalformed, s[i])
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(d)))
	}
	return append(make([]byte, zeros), n.Bytes()...), nil
}

// normalize applies the c32 decoding aliases (lowercase, O->0, I/L->1).
func normalize(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch c {
	case 'O':
		return '0'
	case 'I', 'L':
		return '1'
	}
	return c
}
