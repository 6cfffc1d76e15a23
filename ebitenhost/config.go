package ebitenhost

import (
	"os"
	"strconv"
)

// RunConfig configures the editor window.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Debug enables scene traces on stderr.
	Debug bool
	// ShowStatus draws the FPS and tool overlay.
	ShowStatus bool
	// Script is a path to a JSON input script replayed on start. Empty
	// disables scripting.
	Script string
	// ZoomStep is the zoom change per wheel notch (0.05 = 5%).
	ZoomStep float64
	// ExitWhenDone quits once the script finishes.
	ExitWhenDone bool
}

// LoadRunConfig reads SKETCHPAD_* environment variables, falling back to
// defaults for unset or malformed values.
func LoadRunConfig() RunConfig {
	return RunConfig{
		Title:        getenv("SKETCHPAD_TITLE", "sketchpad"),
		Width:        getenvInt("SKETCHPAD_WIDTH", 1280),
		Height:       getenvInt("SKETCHPAD_HEIGHT", 800),
		Debug:        getenvBool("SKETCHPAD_DEBUG", false),
		ShowStatus:   getenvBool("SKETCHPAD_SHOW_STATUS", true),
		Script:       getenv("SKETCHPAD_SCRIPT", ""),
		ZoomStep:     getenvFloat("SKETCHPAD_ZOOM_STEP", 0.05),
		ExitWhenDone: getenvBool("SKETCHPAD_EXIT_WHEN_DONE", false),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
