package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestManagerResolveOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, second, "models/pad.glb", "second")
	writeFile(t, first, "models/other.glb", "first")

	m := NewManager(first, second)

	got, err := m.Resolve("models/pad.glb")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != filepath.Join(second, "models/pad.glb") {
		t.Errorf("unexpected resolution %q", got)
	}

	writeFile(t, first, "models/pad.glb", "first")
	got, _ = m.Resolve("models/pad.glb")
	if got != filepath.Join(first, "models/pad.glb") {
		t.Errorf("expected first search dir to win, got %q", got)
	}
}

func TestManagerResolveMissing(t *testing.T) {
	m := NewManager(t.TempDir())
	if _, err := m.Resolve("nope.glb"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Resolve(filepath.Join(t.TempDir(), "nope.glb")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for absolute path, got %v", err)
	}
}

func TestManagerResolveDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "models"), 0755); err != nil {
		t.Fatal(err)
	}
	m := NewManager(dir)
	if _, err := m.Resolve("models"); !errors.Is(err, ErrNotFound) {
		t.Errorf("directories must not resolve, got %v", err)
	}
}

func TestManagerAddSearchDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pad.glb", "x")

	m := NewManager()
	m.AddSearchDir(dir)
	if _, err := m.Resolve("pad.glb"); err != nil {
		t.Errorf("Resolve after AddSearchDir: %v", err)
	}
}

func TestManagerLoadCaches(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pad.glb", "original")

	m := NewManager(dir)
	data, err := m.Load("pad.glb")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("unexpected data %q", data)
	}

	if err := os.WriteFile(path, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}
	data, _ = m.Load("pad.glb")
	if string(data) != "original" {
		t.Errorf("expected cached data, got %q", data)
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}

	m.Close()
	data, _ = m.Load("pad.glb")
	if string(data) != "changed" {
		t.Errorf("expected reload after Close, got %q", data)
	}
}

func TestManagerPreview(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.glb", "<html>\n\x00\x01"+strings.Repeat("a", 300))

	m := NewManager(dir)
	got, err := m.Preview("page.glb", PreviewBytes)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(got) != PreviewBytes {
		t.Errorf("expected %d bytes, got %d", PreviewBytes, len(got))
	}
	if !strings.HasPrefix(got, "<html>\n..aaa") {
		t.Errorf("unexpected preview prefix %q", got[:16])
	}
}

func TestCacheClearResetsStats(t *testing.T) {
	c := NewCache()
	c.Set("a", []byte("1"))
	c.Get("a")
	c.Get("b")
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("expected cache to be empty")
	}
	hits, misses := c.Stats()
	if hits != 0 || misses != 1 {
		t.Errorf("expected 0/1 after clear, got %d/%d", hits, misses)
	}
}
