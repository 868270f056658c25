// ABOUTME: View rendering for the player TUI
// ABOUTME: Track list, now-playing line, spectrum bars, search prompt, and help overlay
package ui

import (
	"fmt"
	"strings"
	"time"
)

// barBlocks are the unicode partial blocks used for spectrum bar
// heights, lowest to highest.
var barBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

const watermarkText = "gatto · terminal audio player"

// View renders the full frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.st.title.Render("GATTO"))
	b.WriteString("  ")
	b.WriteString(m.renderModes())
	b.WriteString("\n\n")
	b.WriteString(m.renderTracks())
	b.WriteString("\n")
	b.WriteString(m.renderNowPlaying())
	b.WriteString("\n")
	b.WriteString(m.st.spectrum.Render(m.renderSpectrum()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	if !m.cfg.Watermark.Disabled {
		b.WriteString("\n")
		b.WriteString(m.st.dim.Render(watermarkText))
	}
	return b.String()
}

// renderModes shows the shuffle and loop toggles.
func (m Model) renderModes() string {
	shuffle := m.st.dim.Render("[shuffle]")
	if m.ctrl.Shuffle() {
		shuffle = m.st.accent.Render("[shuffle]")
	}
	loop := m.st.dim.Render("[loop]")
	if m.ctrl.Loop() {
		loop = m.st.accent.Render("[loop]")
	}
	return shuffle + " " + loop
}

func (m Model) renderTracks() string {
	tracks := m.ctrl.Tracks()
	if len(tracks) == 0 {
		if m.ctrl.Searching() || m.ctrl.SearchQuery() != "" {
			return m.st.dim.Render("  no matches")
		}
		return m.st.dim.Render("  no tracks found")
	}

	end := m.scroll + m.rows
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-m.scroll)
	for i := m.scroll; i < end; i++ {
		prefix := "  "
		style := m.st.text
		if i == m.ctrl.Current() && m.ctrl.Playing() {
			prefix = "▶ "
			style = m.st.playing
		}
		if i == m.cursor {
			style = m.st.selected
		}

		name := tracks[i].Title
		if tracks[i].Artist != "" {
			name = tracks[i].Artist + " - " + name
		}
		name = truncate(name, m.width-6)
		lines = append(lines, style.Render(fmt.Sprintf("%s%s", prefix, name)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderNowPlaying() string {
	if !m.ctrl.Playing() {
		return m.st.dim.Render("stopped")
	}

	elapsed := formatDuration(m.engine.Elapsed())
	line := elapsed
	if dur, ok := m.engine.Duration(); ok {
		line += " / " + formatDuration(dur)
	}
	if m.engine.Paused() {
		line += "  ⏸"
	}
	return m.st.text.Render(line)
}

// renderSpectrum maps each analyzer bar level onto a block rune.
func (m Model) renderSpectrum() string {
	bars := m.analyzer.Bars()
	runes := make([]rune, len(bars))
	for i, level := range bars {
		idx := int(level * float64(len(barBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx > len(barBlocks)-1 {
			idx = len(barBlocks) - 1
		}
		runes[i] = barBlocks[idx]
	}
	return string(runes)
}

func (m Model) renderStatus() string {
	if m.ctrl.Searching() {
		return m.st.accent.Render("/" + m.ctrl.SearchQuery() + "█")
	}

	vol := fmt.Sprintf("vol %3.0f%%  sys %3.0f%%",
		m.engine.Volume()*100, m.sysVolumeVal*100)
	hint := m.st.dim.Render("press " + m.cfg.Keybinds.Help + " for help")
	return m.st.text.Render(vol) + "  " + hint
}

func (m Model) renderHelp() string {
	kb := m.cfg.Keybinds
	rows := []struct{ key, action string }{
		{kb.PlayPause, "play / pause"},
		{kb.Next, "next track"},
		{kb.Previous, "previous track"},
		{kb.Select, "play selected"},
		{kb.Shuffle, "toggle shuffle"},
		{kb.Loop, "toggle loop"},
		{kb.SeekForward, "seek forward 10s"},
		{kb.SeekBackward, "seek back 10s"},
		{kb.VolumeUp, "volume up"},
		{kb.VolumeDown, "volume down"},
		{kb.Search, "search"},
		{kb.Clear, "clear queue"},
		{kb.Help, "close help"},
		{kb.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(m.st.title.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		key := r.key
		if key == " " {
			key = "space"
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.st.accent.Render(fmt.Sprintf("%-9s", key)), m.st.text.Render(r.action)))
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
