// ABOUTME: Bubbletea model for the player TUI
// ABOUTME: Routes key input to the controller and drives the analyzer on a frame tick
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gattoplayer/gatto/internal/app"
	"github.com/gattoplayer/gatto/internal/config"
	"github.com/gattoplayer/gatto/internal/visualizer"
)

// frameInterval paces the render loop at roughly 30fps.
const frameInterval = 33 * time.Millisecond

// sysVolumeInterval rate-limits the host mixer query, which shells out.
const sysVolumeInterval = time.Second

type tickMsg time.Time

// sysVolumeMsg carries a fresh host mixer reading back into the model.
type sysVolumeMsg float64

// Model is the bubbletea model wrapping the controller and spectrum
// analyzer.
type Model struct {
	ctrl     *app.Controller
	engine   app.Playback
	analyzer *visualizer.Analyzer
	cfg      *config.Config
	st       styles

	// sysVolume queries the host mixer; swapped for a stub in tests.
	sysVolume     func() float64
	sysVolumeVal  float64
	sysVolumeNext time.Time

	cursor   int
	scroll   int
	rows     int // visible track rows, derived from terminal height
	showHelp bool
	quitting bool

	width  int
	height int
}

// NewModel builds the TUI model. The engine is the same Playback the
// controller drives; the model reads position and pause state from it
// directly.
func NewModel(ctrl *app.Controller, engine app.Playback, analyzer *visualizer.Analyzer, cfg *config.Config, sysVolume func() float64) Model {
	return Model{
		ctrl:         ctrl,
		engine:       engine,
		analyzer:     analyzer,
		cfg:          cfg,
		st:           newStyles(cfg.Colors),
		sysVolume:    sysVolume,
		sysVolumeVal: 1.0,
		rows:         10,
	}
}

// Init starts the frame tick and requests the terminal size.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.WindowSize())
}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses, resize, and the frame tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m = m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rows = msg.Height - 10
		if m.rows < 3 {
			m.rows = 3
		}
		m.adjustScroll()

	case tickMsg:
		m.analyzer.Update()
		m.ctrl.Advance()
		var cmds []tea.Cmd
		cmds = append(cmds, tickCmd())
		if time.Time(msg).After(m.sysVolumeNext) {
			m.sysVolumeNext = time.Time(msg).Add(sysVolumeInterval)
			query := m.sysVolume
			cmds = append(cmds, func() tea.Msg {
				return sysVolumeMsg(query())
			})
		}
		return m, tea.Batch(cmds...)

	case sysVolumeMsg:
		m.sysVolumeVal = float64(msg)
	}

	return m, nil
}

// handleKey routes input. Search mode captures everything except its
// own control keys so typed letters never trigger actions.
func (m Model) handleKey(msg tea.KeyMsg) Model {
	if m.ctrl.Searching() {
		return m.handleSearchKey(msg)
	}

	kb := m.cfg.Keybinds
	switch msg.String() {
	case kb.Quit, "ctrl+c":
		m.quitting = true
	case kb.PlayPause:
		m.ctrl.TogglePlayback()
	case kb.Next:
		m.ctrl.Next()
		m.followCurrent()
	case kb.Previous:
		m.ctrl.Previous()
		m.followCurrent()
	case kb.Shuffle:
		m.ctrl.ToggleShuffle()
	case kb.Loop:
		m.ctrl.ToggleLoop()
	case kb.VolumeUp:
		m.ctrl.VolumeUp()
	case kb.VolumeDown:
		m.ctrl.VolumeDown()
	case kb.SeekForward:
		m.ctrl.SeekForward()
	case kb.SeekBackward:
		m.ctrl.SeekBackward()
	case kb.Select:
		m.ctrl.PlaySelected(m.cursor)
	case kb.Clear:
		m.ctrl.ClearQueue()
		m.cursor = 0
		m.scroll = 0
	case kb.Search:
		m.ctrl.StartSearch()
		m.cursor = 0
		m.scroll = 0
	case kb.Help:
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.adjustScroll()
	case "down", "j":
		if m.cursor < len(m.ctrl.Tracks())-1 {
			m.cursor++
		}
		m.adjustScroll()
	}
	return m
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.ctrl.CancelSearch()
	case "enter":
		m.ctrl.SubmitSearch()
	case "backspace":
		m.ctrl.SearchBackspace()
	case "ctrl+c":
		m.quitting = true
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				m.ctrl.SearchInput(r)
			}
		} else if msg.Type == tea.KeySpace {
			m.ctrl.SearchInput(' ')
		}
	}
	m.cursor = 0
	m.scroll = 0
	return m
}

// followCurrent moves the cursor to the playing track after next and
// previous so the list tracks playback.
func (m *Model) followCurrent() {
	if cur := m.ctrl.Current(); cur >= 0 {
		m.cursor = cur
		m.adjustScroll()
	}
}

// adjustScroll keeps the cursor inside the visible window.
func (m *Model) adjustScroll() {
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+m.rows {
		m.scroll = m.cursor - m.rows + 1
	}
}

// Run starts the TUI on the alternate screen and blocks until exit.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
