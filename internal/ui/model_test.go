// ABOUTME: Tests for the TUI model's key routing and rendering
// ABOUTME: Uses a fake playback engine and a nil sample source
package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gattoplayer/gatto/internal/app"
	"github.com/gattoplayer/gatto/internal/config"
	"github.com/gattoplayer/gatto/internal/library"
	"github.com/gattoplayer/gatto/internal/visualizer"
)

type fakePlayback struct {
	played   []string
	paused   bool
	finished bool
	volume   float64
}

func (f *fakePlayback) Play(path string) error {
	f.played = append(f.played, path)
	f.finished = false
	return nil
}
func (f *fakePlayback) Pause()                          { f.paused = true }
func (f *fakePlayback) Resume()                         { f.paused = false }
func (f *fakePlayback) Stop()                           {}
func (f *fakePlayback) Seek(time.Duration) error        { return nil }
func (f *fakePlayback) Elapsed() time.Duration          { return 42 * time.Second }
func (f *fakePlayback) Duration() (time.Duration, bool) { return 3 * time.Minute, true }
func (f *fakePlayback) Paused() bool                    { return f.paused }
func (f *fakePlayback) IsFinished() bool                { return f.finished }
func (f *fakePlayback) SetVolume(v float64)             { f.volume = v }
func (f *fakePlayback) Volume() float64                 { return f.volume }

type nilSource struct{}

func (nilSource) SampleBuffer() *visualizer.Buffer { return nil }

func testModel(t *testing.T) (Model, *fakePlayback) {
	t.Helper()
	eng := &fakePlayback{volume: 0.5}
	tracks := []library.Track{
		{Path: "/m/a.mp3", Title: "Alpha", Artist: "Ann"},
		{Path: "/m/b.mp3", Title: "Beta", Artist: "Bob"},
		{Path: "/m/c.mp3", Title: "Gamma", Artist: "Cal"},
	}
	ctrl := app.NewController(eng, tracks)
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	analyzer := visualizer.NewAnalyzer(nilSource{}, cfg.Visualizer.BarCount, cfg.Visualizer.Smoothing)
	m := NewModel(ctrl, eng, analyzer, cfg, func() float64 { return 0.8 })
	m.width = 80
	m.height = 24
	return m, eng
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m Model, s string) Model {
	next, _ := m.Update(key(s))
	return next.(Model)
}

func TestQuitKey(t *testing.T) {
	m, _ := testModel(t)
	next, cmd := m.Update(key("q"))
	if !next.(Model).quitting {
		t.Error("expected quitting after q")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestSelectPlaysCursorTrack(t *testing.T) {
	m, eng := testModel(t)
	m = press(m, "down")
	m = press(m, "enter")
	if len(eng.played) != 1 || eng.played[0] != "/m/b.mp3" {
		t.Errorf("expected beta played, got %v", eng.played)
	}
}

func TestCursorBounds(t *testing.T) {
	m, _ := testModel(t)
	m = press(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor should stay at 0, got %d", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m = press(m, "down")
	}
	if m.cursor != 2 {
		t.Errorf("cursor should stop at last track, got %d", m.cursor)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	m, _ := testModel(t)
	m.rows = 2
	m = press(m, "down")
	m = press(m, "down")
	if m.scroll != 1 {
		t.Errorf("expected scroll 1 with cursor 2 and 2 rows, got %d", m.scroll)
	}
	m = press(m, "up")
	m = press(m, "up")
	if m.scroll != 0 {
		t.Errorf("expected scroll back to 0, got %d", m.scroll)
	}
}

func TestSearchCapturesActionKeys(t *testing.T) {
	m, eng := testModel(t)
	m = press(m, "/")
	if !m.ctrl.Searching() {
		t.Fatal("expected search mode")
	}

	// "q" must type into the query, not quit.
	m = press(m, "q")
	if m.quitting {
		t.Fatal("q during search must not quit")
	}
	if m.ctrl.SearchQuery() != "q" {
		t.Errorf("expected query q, got %q", m.ctrl.SearchQuery())
	}

	m = press(m, "backspace")
	for _, r := range "beta" {
		m = press(m, string(r))
	}
	if got := m.ctrl.Tracks(); len(got) != 1 || got[0].Title != "Beta" {
		t.Fatalf("expected Beta filtered, got %v", got)
	}

	m = press(m, "enter")
	if m.ctrl.Searching() {
		t.Error("enter should submit search")
	}

	// Actions work again after submit.
	m = press(m, "enter")
	if len(eng.played) != 1 || eng.played[0] != "/m/b.mp3" {
		t.Errorf("expected beta played after submit, got %v", eng.played)
	}
}

func TestSearchEscCancels(t *testing.T) {
	m, _ := testModel(t)
	m = press(m, "/")
	m = press(m, "x")
	m = press(m, "esc")
	if m.ctrl.Searching() {
		t.Error("esc should cancel search")
	}
	if len(m.ctrl.Tracks()) != 3 {
		t.Errorf("esc should restore full list, got %d", len(m.ctrl.Tracks()))
	}
}

func TestTickAdvancesFinishedTrack(t *testing.T) {
	m, eng := testModel(t)
	m = press(m, "enter") // play Alpha
	eng.finished = true

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(eng.played) != 2 || eng.played[1] != "/m/b.mp3" {
		t.Errorf("expected advance to beta, got %v", eng.played)
	}
}

func TestSysVolumeRefresh(t *testing.T) {
	m, _ := testModel(t)
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected commands from tick")
	}

	next, _ = m.Update(sysVolumeMsg(0.8))
	m = next.(Model)
	if m.sysVolumeVal != 0.8 {
		t.Errorf("expected cached sys volume 0.8, got %f", m.sysVolumeVal)
	}
	if !strings.Contains(m.View(), "sys  80%") {
		t.Errorf("expected sys volume in view:\n%s", m.View())
	}
}

func TestViewShowsTracksAndWatermark(t *testing.T) {
	m, _ := testModel(t)
	view := m.View()
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		if !strings.Contains(view, title) {
			t.Errorf("expected %s in view", title)
		}
	}
	if !strings.Contains(view, watermarkText) {
		t.Error("expected watermark in view")
	}

	m.cfg.Watermark.Disabled = true
	if strings.Contains(m.View(), watermarkText) {
		t.Error("disabled watermark should not render")
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := testModel(t)
	m = press(m, "?")
	view := m.View()
	if !strings.Contains(view, "play / pause") {
		t.Errorf("expected help contents, got:\n%s", view)
	}
	if !strings.Contains(view, "space") {
		t.Error("space bind should render as the word space")
	}
	m = press(m, "?")
	if strings.Contains(m.View(), "play / pause") {
		t.Error("second ? should close help")
	}
}

func TestSpectrumWidthMatchesBarCount(t *testing.T) {
	m, _ := testModel(t)
	bars := m.renderSpectrum()
	if got := len([]rune(bars)); got != m.cfg.Visualizer.BarCount {
		t.Errorf("expected %d spectrum runes, got %d", m.cfg.Visualizer.BarCount, got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("short strings pass through, got %q", got)
	}
	got := truncate("a very long track title indeed", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("expected 10-rune ellipsis truncation, got %q", got)
	}
}
