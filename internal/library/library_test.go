// ABOUTME: Tests for library scanning and the JSON cache
// ABOUTME: Uses temp directories with mixed file types
package library

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFindsSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp3"))
	touch(t, filepath.Join(dir, "b.FLAC"))
	touch(t, filepath.Join(dir, "sub", "c.wav"))
	touch(t, filepath.Join(dir, "cover.jpg"))
	touch(t, filepath.Join(dir, "notes.txt"))

	lib := NewAt(filepath.Join(t.TempDir(), "cache.json"))
	if err := lib.Scan(dir); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if lib.Count() != 3 {
		t.Fatalf("expected 3 tracks, got %d", lib.Count())
	}

	titles := map[string]bool{}
	for _, tr := range lib.Tracks {
		titles[tr.Title] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !titles[want] {
			t.Errorf("missing track title %q in %v", want, titles)
		}
	}
}

func TestScanMissingDirIsNotFatal(t *testing.T) {
	lib := NewAt(filepath.Join(t.TempDir(), "cache.json"))
	if err := lib.Scan(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("expected nil error for missing dir, got %v", err)
	}
	if lib.Count() != 0 {
		t.Errorf("expected empty library, got %d", lib.Count())
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "song.mp3"))
	cache := filepath.Join(t.TempDir(), "cache.json")

	lib := NewAt(cache)
	if err := lib.Scan(dir); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	// A new library over the same cache sees the previous scan without
	// rescanning.
	reloaded := NewAt(cache)
	if reloaded.Count() != 1 {
		t.Fatalf("expected 1 cached track, got %d", reloaded.Count())
	}
	if reloaded.Tracks[0].Title != "song" {
		t.Errorf("expected title %q, got %q", "song", reloaded.Tracks[0].Title)
	}
}

func TestCorruptCacheIgnored(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache.json")
	os.WriteFile(cache, []byte("{not json"), 0644)
	lib := NewAt(cache)
	if lib.Count() != 0 {
		t.Errorf("expected empty library from corrupt cache, got %d", lib.Count())
	}
}
