package graphics

import (
	"os"
	"strings"
)

// Detect returns the best available Protocol for the current terminal,
// or nil if inline images are not supported.
//
// The RIV_IMAGE_PROTOCOL environment variable overrides detection:
//   - "kitty": force Kitty protocol
//   - "sixel": force Sixel protocol
//   - "none": disable image display
func Detect() Protocol {
	if override := os.Getenv("RIV_IMAGE_PROTOCOL"); override != "" {
		switch override {
		case "kitty":
			return NewKittyProtocol()
		case "sixel":
			return NewSixelProtocol()
		case "none":
			return nil
		}
	}

	if IsKittySupported() {
		return NewKittyProtocol()
	}

	if IsSixelSupported() {
		return NewSixelProtocol()
	}

	return nil
}

// IsKittySupported checks if the terminal supports Kitty graphics.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but doesn't support Kitty graphics.
	// Check early because parent terminal env vars (e.g.
	// GHOSTTY_RESOURCES_DIR) can leak into Contour when launched from a
	// Kitty-capable terminal.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM") == "xterm-kitty" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	if version := os.Getenv("KONSOLE_VERSION"); version != "" {
		// KONSOLE_VERSION is like "220401"; Kitty graphics from 22.04+.
		if len(version) >= 4 && version[:4] >= "2204" {
			return true
		}
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	if term == "foot" || term == "foot-extra" {
		return true
	}
	if termProgram == "vscode" {
		return true
	}
	if termProgram == "mintty" {
		return true
	}
	if termProgram == "iTerm.app" {
		return true
	}
	if termProgram == "contour" || os.Getenv("CONTOUR_PROFILE") != "" {
		return true
	}

	// xterm supports sixel when built with --enable-sixel-graphics; not
	// detectable from the environment, but TERM=xterm is a reasonable
	// hint when nothing above matched.
	if term == "xterm" || strings.HasPrefix(term, "xterm-") {
		return true
	}

	return false
}
