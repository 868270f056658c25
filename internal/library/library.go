// ABOUTME: Music library scanning and caching
// ABOUTME: Walks the music directory for supported files and caches the result as JSON
package library

import (
	"encoding/json"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Track is one playable file in the library.
type Track struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
}

// supportedExtensions are the formats the decode layer can open.
var supportedExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
}

// Library holds the scanned track list and its on-disk cache location.
type Library struct {
	Tracks    []Track
	cachePath string
}

// New creates a library backed by a JSON cache under the user cache
// directory, loading any previous scan result.
func New() (*Library, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	dir := filepath.Join(cacheDir, "gatto")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	lib := &Library{cachePath: filepath.Join(dir, "library.json")}
	if err := lib.loadCache(); err != nil {
		// A missing or corrupt cache just means a fresh scan.
		lib.Tracks = nil
	}
	return lib, nil
}

// NewAt creates a library with an explicit cache file path.
func NewAt(cachePath string) *Library {
	lib := &Library{cachePath: cachePath}
	lib.loadCache()
	return lib
}

// Scan walks dir for supported audio files and replaces the track list,
// persisting the result to the cache. Unreadable subtrees are skipped,
// not fatal.
func (l *Library) Scan(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		log.Printf("Music directory not found: %s", dir)
		return nil
	}

	var tracks []Track
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !supportedExtensions[ext] {
			return nil
		}
		tracks = append(tracks, Track{
			Path:  path,
			Title: strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
		})
		return nil
	})
	if err != nil {
		return err
	}

	l.Tracks = tracks
	if err := l.saveCache(); err != nil {
		log.Printf("Failed to save library cache: %v", err)
	}
	log.Printf("Scanned %s: %d tracks", dir, len(tracks))
	return nil
}

// Count returns the number of tracks.
func (l *Library) Count() int {
	return len(l.Tracks)
}

func (l *Library) loadCache() error {
	data, err := os.ReadFile(l.cachePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &l.Tracks)
}

func (l *Library) saveCache() error {
	data, err := json.Marshal(l.Tracks)
	if err != nil {
		return err
	}
	return os.WriteFile(l.cachePath, data, 0644)
}

// DefaultMusicDir resolves the directory to scan: $XDG_MUSIC_DIR if
// set, otherwise ~/Music, otherwise the working directory.
func DefaultMusicDir() string {
	if dir := os.Getenv("XDG_MUSIC_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Music")
}
