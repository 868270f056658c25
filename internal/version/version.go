// ABOUTME: Version constants for the player
// ABOUTME: Reported in logs and the TUI about line
package version

const (
	// Version is the semantic version of this build.
	Version = "0.1.0"

	// Product is the user-facing application name.
	Product = "Gatto"

	// Manufacturer identifies the project publishing this build.
	Manufacturer = "Gatto Project"
)
