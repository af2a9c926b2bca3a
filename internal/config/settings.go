package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/img2zip/img2zip/internal/platform"
)

// RetrievalMode selects the retrieval strategy for a batch
type RetrievalMode string

const (
	// ModeDirect keeps the server's bytes and content type as-is
	ModeDirect RetrievalMode = "direct"

	// ModeRender decodes the image and re-encodes it as PNG
	ModeRender RetrievalMode = "render"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir      = "output_directory"
	KeyRetrievalMode  = "retrieval_mode"
	KeyRequestTimeout = "request_timeout_seconds"
	KeyAutoReveal     = "auto_reveal_on_complete"
	KeyLanguage       = "app_language"
)

// Default values
const (
	DefaultRetrievalMode  = ModeDirect
	DefaultRequestTimeout = 30
	MinRequestTimeout     = 1
	MaxRequestTimeout     = 300
	DefaultAutoReveal     = true
	DefaultLanguage       = "system"
	FallbackOutputDir     = "/tmp/img2zip"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the directory archives are saved to
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackOutputDir
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the archive output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetRetrievalMode returns the configured retrieval strategy. Unknown
// stored values fall back to the direct mode.
func (s *Settings) GetRetrievalMode() RetrievalMode {
	mode := RetrievalMode(s.app.Preferences().String(KeyRetrievalMode))
	switch mode {
	case ModeDirect, ModeRender:
		return mode
	}
	s.SetRetrievalMode(DefaultRetrievalMode)
	return DefaultRetrievalMode
}

// SetRetrievalMode sets the retrieval strategy used for the next batch
func (s *Settings) SetRetrievalMode(mode RetrievalMode) {
	s.app.Preferences().SetString(KeyRetrievalMode, string(mode))
}

// GetRequestTimeout returns the per-request timeout
func (s *Settings) GetRequestTimeout() time.Duration {
	seconds := s.app.Preferences().Int(KeyRequestTimeout)
	if seconds < MinRequestTimeout || seconds > MaxRequestTimeout {
		s.SetRequestTimeoutSeconds(DefaultRequestTimeout)
		seconds = DefaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

// SetRequestTimeoutSeconds sets the per-request timeout, clamped to the
// allowed range
func (s *Settings) SetRequestTimeoutSeconds(seconds int) {
	if seconds < MinRequestTimeout {
		seconds = MinRequestTimeout
	}
	if seconds > MaxRequestTimeout {
		seconds = MaxRequestTimeout
	}
	s.app.Preferences().SetInt(KeyRequestTimeout, seconds)
}

// GetAutoReveal returns whether the saved archive is revealed in the file
// manager after a batch completes
func (s *Settings) GetAutoReveal() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoReveal, DefaultAutoReveal)
}

// SetAutoReveal sets the auto-reveal behavior
func (s *Settings) SetAutoReveal(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoReveal, enabled)
}

// GetLanguage returns the configured UI language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the UI language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}
