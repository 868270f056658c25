// ABOUTME: Read-only system output volume query
// ABOUTME: Shells out to pactl; display-only, never affects playback
package player

import (
	"os/exec"
	"strconv"
	"strings"
)

// SystemVolume returns the host's default sink volume in [0, 1] as
// reported by PulseAudio. It is an informational side channel for the
// UI; when pactl is missing or unparsable it reports 1.0.
func SystemVolume() float64 {
	out, err := exec.Command("pactl", "get-sink-volume", "@DEFAULT_SINK@").Output()
	if err != nil {
		return 1.0
	}
	return parsePactlVolume(string(out))
}

// parsePactlVolume extracts the first percentage from output shaped
// like "Volume: front-left: 21870 / 33% / 0.13 dB ...".
func parsePactlVolume(s string) float64 {
	before, _, found := strings.Cut(s, "%")
	if !found {
		return 1.0
	}
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return 1.0
	}
	pct, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 1.0
	}
	return clampVolume(pct / 100.0)
}
