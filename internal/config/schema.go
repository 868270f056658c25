// ABOUTME: Configuration schema and defaults
// ABOUTME: Mirrors the config.toml layout: colors, keybinds, visualizer, watermark
package config

// Config is the full configuration file schema.
type Config struct {
	Colors     ColorConfig      `toml:"colors"`
	Keybinds   KeybindConfig    `toml:"keybinds"`
	Visualizer VisualizerConfig `toml:"visualizer"`
	Watermark  WatermarkConfig  `toml:"watermark"`
}

// ColorConfig names the UI palette. Values are color names or #rrggbb.
type ColorConfig struct {
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	Accent               string `toml:"accent"`
	VisualizerForeground string `toml:"visualizer_foreground"`
	VisualizerBackground string `toml:"visualizer_background"`
}

// KeybindConfig maps actions to keys.
type KeybindConfig struct {
	Quit         string `toml:"quit"`
	PlayPause    string `toml:"play_pause"`
	Next         string `toml:"next"`
	Previous     string `toml:"previous"`
	Shuffle      string `toml:"shuffle"`
	VolumeUp     string `toml:"volume_up"`
	VolumeDown   string `toml:"volume_down"`
	Select       string `toml:"select"`
	Clear        string `toml:"clear"`
	Search       string `toml:"search"`
	Loop         string `toml:"loop"`
	SeekForward  string `toml:"seek_forward"`
	SeekBackward string `toml:"seek_backward"`
	Help         string `toml:"help"`
}

// VisualizerConfig feeds the spectrum analyzer. Smoothing outside [0, 1]
// is passed through as given and produces degenerate decay or tracking.
type VisualizerConfig struct {
	BarCount  int     `toml:"bar_count"`
	Smoothing float64 `toml:"smoothing"`
}

// WatermarkConfig toggles the footer branding line, shown unless
// disabled.
type WatermarkConfig struct {
	Disabled bool `toml:"disabled"`
}

// ApplyDefaults fills any zero-valued field with its default.
func (c *Config) ApplyDefaults() {
	if c.Colors.Foreground == "" {
		c.Colors.Foreground = "white"
	}
	if c.Colors.Background == "" {
		c.Colors.Background = "black"
	}
	if c.Colors.Accent == "" {
		c.Colors.Accent = "cyan"
	}
	if c.Colors.VisualizerForeground == "" {
		c.Colors.VisualizerForeground = "lightblue"
	}
	if c.Colors.VisualizerBackground == "" {
		c.Colors.VisualizerBackground = "black"
	}

	kb := &c.Keybinds
	defaults := []struct {
		field *string
		value string
	}{
		{&kb.Quit, "q"},
		{&kb.PlayPause, " "},
		{&kb.Next, "n"},
		{&kb.Previous, "p"},
		{&kb.Shuffle, "s"},
		{&kb.VolumeUp, "+"},
		{&kb.VolumeDown, "-"},
		{&kb.Select, "enter"},
		{&kb.Clear, "c"},
		{&kb.Search, "/"},
		{&kb.Loop, "l"},
		{&kb.SeekForward, "f"},
		{&kb.SeekBackward, "h"},
		{&kb.Help, "?"},
	}
	for _, d := range defaults {
		if *d.field == "" {
			*d.field = d.value
		}
	}

	if c.Visualizer.BarCount <= 0 {
		c.Visualizer.BarCount = 48
	}
	if c.Visualizer.Smoothing == 0 {
		c.Visualizer.Smoothing = 0.7
	}
}
