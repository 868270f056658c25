// ABOUTME: Application state controller: queue, shuffle, search, and playback commands
// ABOUTME: Sits between the UI and the playback engine with no terminal dependencies
package app

import (
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/gattoplayer/gatto/internal/library"
)

// seekStep is the distance a single seek command moves playback.
const seekStep = 10 * time.Second

// volumeStep is the change a single volume command applies.
const volumeStep = 0.05

// Playback is the subset of the engine the controller drives. Tests
// substitute a fake; production wires *player.Engine.
type Playback interface {
	Play(path string) error
	Pause()
	Resume()
	Stop()
	Seek(target time.Duration) error
	Elapsed() time.Duration
	Duration() (time.Duration, bool)
	Paused() bool
	IsFinished() bool
	SetVolume(v float64)
	Volume() float64
}

// Controller owns the track queue and user-facing playback state. It is
// driven from the UI event loop and is not safe for concurrent use.
type Controller struct {
	engine Playback

	tracks  []library.Track
	visible []int // indexes into tracks, filtered by search
	current int   // index into visible, -1 when nothing selected

	playing bool
	shuffle bool
	loop    bool

	// played tracks which visible entries shuffle has already picked;
	// it resets once every entry has been played.
	played map[int]bool

	searching   bool
	searchQuery string
}

// NewController wires a controller around a playback engine and an
// initial track list.
func NewController(engine Playback, tracks []library.Track) *Controller {
	c := &Controller{
		engine:  engine,
		tracks:  tracks,
		current: -1,
		played:  make(map[int]bool),
	}
	c.resetFilter()
	return c
}

// Tracks returns the currently visible (possibly search-filtered)
// track list.
func (c *Controller) Tracks() []library.Track {
	out := make([]library.Track, len(c.visible))
	for i, idx := range c.visible {
		out[i] = c.tracks[idx]
	}
	return out
}

// Current returns the visible index of the playing track, or -1.
func (c *Controller) Current() int { return c.current }

// Playing reports whether a track is loaded (paused still counts).
func (c *Controller) Playing() bool { return c.playing }

// Shuffle reports whether shuffle mode is on.
func (c *Controller) Shuffle() bool { return c.shuffle }

// Loop reports whether the current track repeats when it ends.
func (c *Controller) Loop() bool { return c.loop }

// PlaySelected starts the track at visible index i. Out-of-range
// indexes are ignored.
func (c *Controller) PlaySelected(i int) {
	if i < 0 || i >= len(c.visible) {
		return
	}
	c.startAt(i)
}

func (c *Controller) startAt(i int) {
	track := c.tracks[c.visible[i]]
	if err := c.engine.Play(track.Path); err != nil {
		log.Printf("Failed to play %s: %v", track.Path, err)
		return
	}
	c.current = i
	c.playing = true
	c.played[i] = true
}

// TogglePlayback pauses a playing track, resumes a paused one, and
// starts the first visible track when nothing is loaded.
func (c *Controller) TogglePlayback() {
	if !c.playing {
		if len(c.visible) > 0 {
			c.startAt(0)
		}
		return
	}
	if c.engine.Paused() {
		c.engine.Resume()
	} else {
		c.engine.Pause()
	}
}

// Next advances to the following track: the shuffle pick in shuffle
// mode, otherwise the next visible entry with wraparound.
func (c *Controller) Next() {
	if len(c.visible) == 0 {
		return
	}
	if c.shuffle {
		c.startAt(c.shufflePick())
		return
	}
	c.startAt((c.current + 1) % len(c.visible))
}

// Previous steps back one visible entry with wraparound.
func (c *Controller) Previous() {
	if len(c.visible) == 0 {
		return
	}
	i := c.current - 1
	if i < 0 {
		i = len(c.visible) - 1
	}
	c.startAt(i)
}

// shufflePick returns a random unplayed visible index. When every
// entry has been played the history resets and any index is fair game
// again.
func (c *Controller) shufflePick() int {
	if len(c.played) >= len(c.visible) {
		c.played = make(map[int]bool)
	}
	candidates := make([]int, 0, len(c.visible))
	for i := range c.visible {
		if !c.played[i] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return rand.Intn(len(c.visible))
	}
	return candidates[rand.Intn(len(candidates))]
}

// ToggleShuffle flips shuffle mode, clearing the played history on
// each flip.
func (c *Controller) ToggleShuffle() {
	c.shuffle = !c.shuffle
	c.played = make(map[int]bool)
}

// ToggleLoop flips single-track repeat.
func (c *Controller) ToggleLoop() {
	c.loop = !c.loop
}

// Stop halts playback and clears the current selection.
func (c *Controller) Stop() {
	c.engine.Stop()
	c.playing = false
	c.current = -1
}

// ShouldAdvance reports whether the playing track has run out and a
// follow-up action is due.
func (c *Controller) ShouldAdvance() bool {
	return c.playing && len(c.visible) > 0 && c.engine.IsFinished()
}

// Advance moves to the next track when the current one has finished:
// the same track again in loop mode, otherwise Next.
func (c *Controller) Advance() {
	if !c.ShouldAdvance() {
		return
	}
	if c.loop && c.current >= 0 {
		c.startAt(c.current)
		return
	}
	c.Next()
}

// SeekForward jumps ahead by the seek step; the engine clamps at the
// track's end.
func (c *Controller) SeekForward() {
	c.seekBy(seekStep)
}

// SeekBackward jumps back by the seek step; the engine clamps at zero.
func (c *Controller) SeekBackward() {
	c.seekBy(-seekStep)
}

func (c *Controller) seekBy(delta time.Duration) {
	if !c.playing {
		return
	}
	if err := c.engine.Seek(c.engine.Elapsed() + delta); err != nil {
		log.Printf("Seek failed: %v", err)
	}
}

// VolumeUp raises volume one step; the engine clamps at 1.
func (c *Controller) VolumeUp() {
	c.engine.SetVolume(c.engine.Volume() + volumeStep)
}

// VolumeDown lowers volume one step; the engine clamps at 0.
func (c *Controller) VolumeDown() {
	c.engine.SetVolume(c.engine.Volume() - volumeStep)
}

// StartSearch enters search mode with an empty query. The full list
// stays visible until the query narrows it.
func (c *Controller) StartSearch() {
	c.searching = true
	c.searchQuery = ""
	c.applyFilter()
}

// CancelSearch leaves search mode and restores the full list.
func (c *Controller) CancelSearch() {
	c.searching = false
	c.searchQuery = ""
	c.resetFilter()
}

// SubmitSearch leaves search mode keeping the filtered list in place.
func (c *Controller) SubmitSearch() {
	c.searching = false
}

// Searching reports whether search input is active.
func (c *Controller) Searching() bool { return c.searching }

// SearchQuery returns the current query text.
func (c *Controller) SearchQuery() string { return c.searchQuery }

// SearchInput appends a typed rune to the query and re-filters.
func (c *Controller) SearchInput(r rune) {
	if !c.searching {
		return
	}
	c.searchQuery += string(r)
	c.applyFilter()
}

// SearchBackspace removes the query's last rune and re-filters.
func (c *Controller) SearchBackspace() {
	if !c.searching || c.searchQuery == "" {
		return
	}
	runes := []rune(c.searchQuery)
	c.searchQuery = string(runes[:len(runes)-1])
	c.applyFilter()
}

// applyFilter rebuilds the visible list as the case-insensitive title
// substring match of the query. Filtering invalidates the current
// selection and shuffle history since visible indexes shift.
func (c *Controller) applyFilter() {
	if c.searchQuery == "" {
		c.resetFilter()
		return
	}
	query := strings.ToLower(c.searchQuery)
	playingTrack := -1
	if c.current >= 0 {
		playingTrack = c.visible[c.current]
	}

	c.visible = c.visible[:0]
	for i, t := range c.tracks {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Artist), query) {
			c.visible = append(c.visible, i)
		}
	}
	c.relocate(playingTrack)
}

func (c *Controller) resetFilter() {
	playingTrack := -1
	if c.current >= 0 && c.current < len(c.visible) {
		playingTrack = c.visible[c.current]
	}
	c.visible = c.visible[:0]
	for i := range c.tracks {
		c.visible = append(c.visible, i)
	}
	c.relocate(playingTrack)
}

// relocate re-finds the playing track's position in the rebuilt
// visible list, or clears the selection when it was filtered out.
func (c *Controller) relocate(trackIdx int) {
	c.played = make(map[int]bool)
	c.current = -1
	if trackIdx < 0 {
		return
	}
	for i, idx := range c.visible {
		if idx == trackIdx {
			c.current = i
			c.played[i] = true
			return
		}
	}
}

// ClearQueue empties the track list entirely and stops playback.
func (c *Controller) ClearQueue() {
	c.Stop()
	c.tracks = nil
	c.resetFilter()
}

// SetTracks replaces the track list, e.g. after a library rescan.
func (c *Controller) SetTracks(tracks []library.Track) {
	c.tracks = tracks
	c.searchQuery = ""
	c.searching = false
	c.resetFilter()
}
