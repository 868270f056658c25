// ABOUTME: Tests for pactl output parsing
// ABOUTME: Covers the normal volume line, garbage input, and clamping
package player

import "testing"

func TestParsePactlVolume(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{
			name: "typical stereo line",
			in:   "Volume: front-left: 21870 /  33% / -28.75 dB,   front-right: 21870 /  33% / -28.75 dB",
			want: 0.33,
		},
		{
			name: "full volume",
			in:   "Volume: mono: 65536 / 100% / 0.00 dB",
			want: 1.0,
		},
		{
			name: "boosted volume clamps",
			in:   "Volume: mono: 98304 / 150% / 10.57 dB",
			want: 1.0,
		},
		{
			name: "no percent sign",
			in:   "Volume: unknown",
			want: 1.0,
		},
		{
			name: "empty output",
			in:   "",
			want: 1.0,
		},
		{
			name: "non-numeric field",
			in:   "Volume: abc%",
			want: 1.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePactlVolume(tt.in); got != tt.want {
				t.Errorf("parsePactlVolume(%q) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}
