// Package keys - session key material: generation, fingerprints and key files.
//
// A Pair is an X25519 key pair, hex encoded. The public half is what travels
// over the wire during the key exchange; the private half never leaves the
// process unless it is written to a key file by `linechat keygen`.
package keys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/curve25519"

	"github.com/rectcircle/linechat/tools"
)

// Size - raw key size in bytes
const Size = curve25519.ScalarSize

var (
	// ErrMalformed - key text is not Size hex encoded bytes
	ErrMalformed = errors.New("malformed key")
	// ErrMismatch - public key file does not belong to the private key
	ErrMismatch = errors.New("public key does not match private key")
)

// Key - a hex encoded session key
type Key string

// String - the key text
func (k Key) String() string { return string(k) }

// Fingerprint - short display form, sha256 truncated to 10 bytes
func (k Key) Fingerprint() string {
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:10])
}

// Pair - private and public key
type Pair struct {
	Private Key
	Public  Key
}

// Generate - create a fresh pair
func Generate() (Pair, error) {
	var priv [Size]byte
	if _, err := rand.Read(priv[:]); err != nil {
		return Pair{}, err
	}
	clamp(&priv)
	defer wipe(priv[:])
	return fromPrivate(priv[:])
}

// FromPrivate - rebuild the pair from the private key text
func FromPrivate(private Key) (Pair, error) {
	raw, err := decode(private)
	if err != nil {
		return Pair{}, err
	}
	defer wipe(raw)
	return fromPrivate(raw)
}

func fromPrivate(priv []byte) (Pair, error) {
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		Private: Key(hex.EncodeToString(priv)),
		Public:  Key(hex.EncodeToString(pub)),
	}, nil
}

// Save - write the pair to two new files, private 0600 and public 0644
func Save(pair Pair, privPath, pubPath string) error {
	if err := tools.WriteFileExclusive(privPath, 0o600, []byte(pair.Private+"\n")); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	if err := tools.WriteFileExclusive(pubPath, 0o644, []byte(pair.Public+"\n")); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}
	return nil
}

// Load - read a private key file, and if pubPath is not empty check the
// public key file belongs to it
func Load(privPath, pubPath string) (Pair, error) {
	content, err := os.ReadFile(privPath)
	if err != nil {
		return Pair{}, err
	}
	pair, err := FromPrivate(Key(strings.TrimSpace(string(content))))
	if err != nil {
		return Pair{}, fmt.Errorf("%s: %w", privPath, err)
	}
	if pubPath == "" {
		return pair, nil
	}
	content, err = os.ReadFile(pubPath)
	if err != nil {
		return Pair{}, err
	}
	if Key(strings.TrimSpace(string(content))) != pair.Public {
		return Pair{}, fmt.Errorf("%s: %w", pubPath, ErrMismatch)
	}
	return pair, nil
}

// LoadOrCreate - read the private key file, generate and store one if it
// does not exist yet
func LoadOrCreate(privPath string) (Pair, error) {
	content, err := tools.ReadOrCreateFile(privPath, 0o600, func() ([]byte, error) {
		pair, err := Generate()
		if err != nil {
			return nil, err
		}
		return []byte(pair.Private + "\n"), nil
	})
	if err != nil {
		return Pair{}, err
	}
	return FromPrivate(Key(strings.TrimSpace(string(content))))
}

func decode(k Key) ([]byte, error) {
	raw, err := hex.DecodeString(string(k))
	if err != nil || len(raw) != Size {
		return nil, ErrMalformed
	}
	return raw, nil
}

// clamp per RFC 7748
func clamp(k *[Size]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
