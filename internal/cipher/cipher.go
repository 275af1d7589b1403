// Package cipher - the reversible per-byte transform applied to every chat line.
//
// This is an obfuscation, not encryption: every byte is shifted by one
// (mod 256) and the unshifted marker "33" is appended so a receiver can
// discard lines that did not come from Encode. The key is accepted for
// every operation but the shift amount does not depend on it.
package cipher

import (
	"errors"

	"github.com/rectcircle/linechat/internal/keys"
	"github.com/rectcircle/linechat/internal/variable"
)

const shift = byte(1)

// MarkerLen - bytes appended by Encode
const MarkerLen = len(variable.AuthMarker)

// ErrNotAuthentic - input does not end with the marker
var ErrNotAuthentic = errors.New("frame is not authentic")

// Encode - shift every byte of plain by +1 and append the marker
func Encode(plain []byte, key keys.Key) []byte {
	wire := make([]byte, len(plain), len(plain)+MarkerLen)
	for i, b := range plain {
		wire[i] = b + shift
	}
	return append(wire, variable.AuthMarker...)
}

// Decode - reverse Encode, wire must be authentic
func Decode(wire []byte, key keys.Key) ([]byte, error) {
	if !IsAuthentic(wire) {
		return nil, ErrNotAuthentic
	}
	// shift the whole buffer, marker included, then drop the marker positions
	plain := make([]byte, len(wire))
	for i, b := range wire {
		plain[i] = b - shift
	}
	return plain[:len(plain)-MarkerLen], nil
}

// IsAuthentic - whether wire ends with the marker, checked before decoding
func IsAuthentic(wire []byte) bool {
	n := len(wire)
	if n < MarkerLen {
		return false
	}
	return string(wire[n-MarkerLen:]) == variable.AuthMarker
}
