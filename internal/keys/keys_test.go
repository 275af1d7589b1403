package keys

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	a, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(a.Private) != 2*Size || len(a.Public) != 2*Size {
		t.Errorf("key lengths = %d/%d, want %d", len(a.Private), len(a.Public), 2*Size)
	}
	if a.Private == a.Public {
		t.Errorf("private and public key are equal")
	}
	if a == b {
		t.Errorf("two generated pairs are equal")
	}
	if strings.ContainsAny(string(a.Public), "\r\n") {
		t.Errorf("public key contains a line break: %q", a.Public)
	}
}

func TestFromPrivate(t *testing.T) {
	pair, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromPrivate(pair.Private)
	if err != nil {
		t.Fatalf("FromPrivate() error = %v", err)
	}
	if got != pair {
		t.Errorf("FromPrivate() = %v, want %v", got, pair)
	}

	tests := []struct {
		name string
		key  Key
	}{
		{name: "empty", key: ""},
		{name: "not hex", key: Key(strings.Repeat("zz", Size))},
		{name: "short", key: "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromPrivate(tt.key); !errors.Is(err, ErrMalformed) {
				t.Errorf("FromPrivate() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	k := Key("Toi")
	if got := k.Fingerprint(); len(got) != 20 {
		t.Errorf("Fingerprint() = %q, want 20 hex chars", got)
	}
	if k.Fingerprint() != Key("Toi").Fingerprint() {
		t.Errorf("Fingerprint() is not stable")
	}
	if k.Fingerprint() == Key("Hello").Fingerprint() {
		t.Errorf("different keys share a fingerprint")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	priv := filepath.Join(dir, "me.key")
	pub := filepath.Join(dir, "me.pub")
	pair, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(pair, priv, pub); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := Save(pair, priv, pub); err == nil {
		t.Errorf("Save() over existing files should fail")
	}
	info, err := os.Stat(priv)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("private key perm = %04o, want 0600", perm)
	}

	got, err := Load(priv, pub)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != pair {
		t.Errorf("Load() = %v, want %v", got, pair)
	}
	got, err = Load(priv, "")
	if err != nil || got != pair {
		t.Errorf("Load() without public = %v, %v", got, err)
	}

	other, _ := Generate()
	otherPub := filepath.Join(dir, "other.pub")
	if err := os.WriteFile(otherPub, []byte(other.Public), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(priv, otherPub); !errors.Is(err, ErrMismatch) {
		t.Errorf("Load() with foreign public key error = %v, want ErrMismatch", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.key"), ""); err == nil {
		t.Errorf("Load() of missing file should fail")
	}
}

func TestLoadOrCreate(t *testing.T) {
	priv := filepath.Join(t.TempDir(), "id", "linechat.key")
	first, err := LoadOrCreate(priv)
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	second, err := LoadOrCreate(priv)
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if first != second {
		t.Errorf("LoadOrCreate() not stable: %v != %v", first, second)
	}
}
