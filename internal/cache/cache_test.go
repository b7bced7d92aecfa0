package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := openTestCache(t)
	session := uuid.New()

	key := Key([]byte("component A () {}"), []byte("module: game"))
	if _, ok := c.Lookup(key); ok {
		t.Fatal("lookup hit on empty cache")
	}

	if err := c.Store(key, "class A {}", session); err != nil {
		t.Fatalf("Store: %v", err)
	}
	out, ok := c.Lookup(key)
	if !ok || out != "class A {}" {
		t.Errorf("Lookup = (%q, %v), want cached output", out, ok)
	}

	// Replacement, not duplication.
	if err := c.Store(key, "class A { mut x }", session); err != nil {
		t.Fatalf("Store: %v", err)
	}
	out, _ = c.Lookup(key)
	if out != "class A { mut x }" {
		t.Errorf("Lookup after replace = %q", out)
	}
	if n, err := c.Len(); err != nil || n != 1 {
		t.Errorf("Len = (%d, %v), want 1", n, err)
	}
}

func TestCacheKeySensitivity(t *testing.T) {
	source := []byte("component A () {}")
	config := []byte("module: game")

	base := Key(source, config)
	if Key(source, config) != base {
		t.Error("key not deterministic")
	}
	if Key([]byte("component B () {}"), config) == base {
		t.Error("key ignores source changes")
	}
	if Key(source, []byte("module: other")) == base {
		t.Error("key ignores config changes")
	}
}

func TestCacheClean(t *testing.T) {
	c := openTestCache(t)
	if err := c.Store(Key([]byte("a"), nil), "out", uuid.New()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := c.Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if n, _ := c.Len(); n != 0 {
		t.Errorf("Len after clean = %d, want 0", n)
	}
}

func TestConfigFingerprintNormalizes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	if err := os.WriteFile(a, []byte("module: game\nclasses: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("module: game  \nclasses: []\t\r\n\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fa, err := ConfigFingerprint(a)
	if err != nil {
		t.Fatalf("ConfigFingerprint: %v", err)
	}
	fb, err := ConfigFingerprint(b)
	if err != nil {
		t.Fatalf("ConfigFingerprint: %v", err)
	}
	if string(fa) != string(fb) {
		t.Errorf("fingerprints differ:\n%q\n%q", fa, fb)
	}

	empty, err := ConfigFingerprint("")
	if err != nil || empty != nil {
		t.Errorf("empty path = (%q, %v), want (nil, nil)", empty, err)
	}
}
