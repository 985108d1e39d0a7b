package common

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// HashLength is the expected length of the hash
const HashLength = 32

// ErrInvalidHashLength is returned when a decoded hash is not 32 bytes long.
var ErrInvalidHashLength = errors.New("invalid hash length")

// Hash represents the 32 byte digest of a ledger entry.
// Its text form is the base58 encoding of the raw bytes.
type Hash [HashLength]byte

// BytesToHash sets b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// Base58ToHash decodes a base58 string into a hash.
func Base58ToHash(s string) (Hash, error) {
	var h Hash
	b, err := base58.Decode(s)
	if err != nil {
		return h, fmt.Errorf("decode base58 hash %q: %w", s, err)
	}
	if len(b) != HashLength {
		return h, fmt.Errorf("%w: %d", ErrInvalidHashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

// String implements the stringer interface and is used also by the logger.
func (h Hash) String() string {
	return base58.Encode(h[:])
}

// SetBytes sets the hash to the value of b.
// If b is larger than len(h), b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// MarshalText returns the base58 representation of h.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses a hash in base58 syntax.
func (h *Hash) UnmarshalText(input []byte) error {
	res, err := Base58ToHash(string(input))
	if err != nil {
		return err
	}
	*h = res
	return nil
}

// MarshalJSON renders the hash as a base58 JSON string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON parses a hash from a base58 JSON string.
func (h *Hash) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	return h.UnmarshalText([]byte(s))
}
